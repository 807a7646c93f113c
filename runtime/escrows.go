// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/vechain/stakepoints/escrow"
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/types"
)

// Escrow returns the open escrow id, or its settlement along with ErrAlreadyClaimed.
func (r *Runtime) Escrow(id types.Address) (esc *escrow.Escrow, settled *escrow.Settled, err error) {
	err = r.view(escrowResources(id), func(e *env) error {
		esc, settled, err = e.escrow.Get(id)
		return err
	})
	return
}

// InitializeEscrow locks amount of mint from caller until receiver claims it.
func (r *Runtime) InitializeEscrow(caller, id, receiver, mint types.Address, amount uint64) (esc *escrow.Escrow, err error) {
	err = r.exec("initialize_escrow", escrowResources(id, caller), func(e *env) error {
		if err := authenticated(caller); err != nil {
			return err
		}
		if esc, err = e.escrow.Initialize(caller, id, receiver, mint, amount); err != nil {
			return err
		}
		e.emit(logdb.EscrowInitialized, id, caller, mint, amount, 0)
		return nil
	})
	return
}

// ClaimEscrow releases escrow id to its receiver, who must be the caller.
func (r *Runtime) ClaimEscrow(caller, id types.Address) (settled *escrow.Settled, err error) {
	err = r.exec("claim_escrow", escrowResources(id, caller), func(e *env) error {
		if err := authenticated(caller); err != nil {
			return err
		}
		if settled, err = e.escrow.Claim(caller, id, e.now); err != nil {
			return err
		}
		e.emit(logdb.EscrowClaimed, id, caller, settled.Escrow.Mint, settled.Escrow.Amount, 0)
		return nil
	})
	return
}
