// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/types"
)

// Balance returns the amount of asset held by holder.
func (r *Runtime) Balance(holder, asset types.Address) (bal uint64, err error) {
	err = r.view([]types.Address{holder}, func(e *env) error {
		bal, err = e.custody.Balance(holder, asset)
		return err
	})
	return
}

// Supply returns the minted amount of asset.
func (r *Runtime) Supply(asset types.Address) (supply uint64, err error) {
	err = r.view([]types.Address{asset}, func(e *env) error {
		supply, err = e.custody.Supply(asset)
		return err
	})
	return
}

// Faucet mints amount of asset to holder. Only available in dev mode.
func (r *Runtime) Faucet(holder, asset types.Address, amount uint64) error {
	if !r.opts.Dev {
		return ErrFaucetDisabled
	}
	return r.exec("faucet", []types.Address{holder, asset}, func(e *env) error {
		if amount == 0 {
			return reverts.ErrInvalidAmount
		}
		if err := e.custody.Mint(holder, asset, amount); err != nil {
			return err
		}
		e.emit(logdb.FaucetMinted, holder, types.Address{}, asset, amount, 0)
		return nil
	})
}
