// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepoints/auth"
	"github.com/vechain/stakepoints/custody"
	"github.com/vechain/stakepoints/escrow"
	"github.com/vechain/stakepoints/lvldb"
	"github.com/vechain/stakepoints/staker"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

func dataDirOf(ctx *cli.Context) (string, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	return dir, nil
}

func masterKeyAction(ctx *cli.Context) error {
	dataDir, err := dataDirOf(ctx)
	if err != nil {
		return err
	}
	key, err := auth.LoadOrGenerateKey(masterKeyPath(dataDir))
	if err != nil {
		return errors.WithMessage(err, "master key")
	}
	fmt.Println(auth.KeyAddress(key))
	if ctx.Bool(exportMasterKeyFlag.Name) {
		fmt.Println(hex.EncodeToString(crypto.FromECDSA(key)))
	}
	return nil
}

func inspectAction(ctx *cli.Context) error {
	dataDir, err := dataDirOf(ctx)
	if err != nil {
		return err
	}
	account, err := parseAddressFlag(ctx, accountFlag)
	if err != nil {
		return err
	}
	escrowID, err := parseAddressFlag(ctx, escrowFlag)
	if err != nil {
		return err
	}
	holder, err := parseAddressFlag(ctx, holderFlag)
	if err != nil {
		return err
	}
	list := ctx.Bool(listAccountsFlag.Name)
	if account == nil && escrowID == nil && holder == nil && !list {
		return fmt.Errorf("nothing to inspect, give -%s, -%s, -%s or -%s", accountFlag.Name, escrowFlag.Name, holderFlag.Name, listAccountsFlag.Name)
	}

	db, err := lvldb.New(filepath.Join(dataDir, "main.db"), lvldb.Options{})
	if err != nil {
		return errors.Wrap(err, "open main database")
	}
	defer db.Close()

	store, err := storage.NewStore(db, 0)
	if err != nil {
		return err
	}
	// reads only, the stage is never committed
	stage := store.NewStage()
	cust := custody.New(stage)

	if list {
		accounts, err := staker.Accounts(db)
		if err != nil {
			return errors.WithMessage(err, "list accounts")
		}
		for _, acc := range accounts {
			fmt.Printf("%v staked=%d points=%d updated=%d\n", acc.Owner, acc.StakedAmount, acc.TotalPoints, acc.LastUpdateTime)
		}
	}
	if account != nil {
		acc, err := staker.New(stage, cust).Account(*account)
		if err != nil {
			return errors.WithMessage(err, "account")
		}
		spew.Dump(acc)
	}
	if escrowID != nil {
		esc, settled, err := escrow.New(stage, cust).Get(*escrowID)
		if err != nil && settled == nil {
			return errors.WithMessage(err, "escrow")
		}
		if settled != nil {
			spew.Dump(settled)
		} else {
			spew.Dump(esc)
		}
	}
	if holder != nil {
		for _, asset := range []types.Address{types.NativeAsset, types.PointsAsset} {
			bal, err := cust.Balance(*holder, asset)
			if err != nil {
				return errors.WithMessage(err, "balance")
			}
			fmt.Printf("%v %v: %d\n", *holder, asset, bal)
		}
	}
	return nil
}
