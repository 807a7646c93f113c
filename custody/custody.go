// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package custody keeps value balances per (holder, asset) and moves value between holders.
package custody

import (
	"math"

	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/kv"
	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

const (
	bucketBalances kv.Bucket = "b"
	bucketSupply   kv.Bucket = "s"
)

type holding struct {
	holder types.Address
	asset  types.Address
}

func (h holding) Bytes() []byte {
	return append(h.asset.Bytes(), h.holder.Bytes()...)
}

// Custody reads and writes balances through the given store, usually a stage.
type Custody struct {
	balances *storage.Mapping[holding, uint64]
	supply   *storage.Mapping[types.Address, uint64]
}

func New(src kv.GetPutter) *Custody {
	return &Custody{
		balances: storage.NewMapping[holding, uint64](src, bucketBalances),
		supply:   storage.NewMapping[types.Address, uint64](src, bucketSupply),
	}
}

// Balance returns the amount of asset held by holder.
func (c *Custody) Balance(holder, asset types.Address) (uint64, error) {
	bal, _, err := c.balances.Get(holding{holder, asset})
	return bal, err
}

// Supply returns the total minted amount of asset.
func (c *Custody) Supply(asset types.Address) (uint64, error) {
	s, _, err := c.supply.Get(asset)
	return s, err
}

func (c *Custody) setBalance(holder, asset types.Address, amount uint64) error {
	if amount == 0 {
		return c.balances.Delete(holding{holder, asset})
	}
	return c.balances.Set(holding{holder, asset}, amount)
}

// Transfer moves amount of asset from one holder to another.
// It fails with ErrTransferFailed when from holds less than amount.
func (c *Custody) Transfer(from, to, asset types.Address, amount uint64) error {
	if amount == 0 || from == to {
		return nil
	}
	fromBal, err := c.Balance(from, asset)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return errors.WithMessagef(reverts.ErrTransferFailed, "%v holds %d, needs %d", from, fromBal, amount)
	}
	toBal, err := c.Balance(to, asset)
	if err != nil {
		return err
	}
	if toBal > math.MaxUint64-amount {
		return reverts.ErrOverflow
	}
	if err := c.setBalance(from, asset, fromBal-amount); err != nil {
		return err
	}
	return c.setBalance(to, asset, toBal+amount)
}

// Mint creates amount of asset and credits it to holder.
func (c *Custody) Mint(to, asset types.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	supply, err := c.Supply(asset)
	if err != nil {
		return err
	}
	if supply > math.MaxUint64-amount {
		return reverts.ErrOverflow
	}
	bal, err := c.Balance(to, asset)
	if err != nil {
		return err
	}
	// balance <= supply, so it cannot overflow here
	if err := c.supply.Set(asset, supply+amount); err != nil {
		return err
	}
	return c.setBalance(to, asset, bal+amount)
}
