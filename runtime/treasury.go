// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/staker/treasury"
	"github.com/vechain/stakepoints/types"
)

// Treasury returns the treasury record and its balance.
func (r *Runtime) Treasury() (info *treasury.Info, err error) {
	err = r.view([]types.Address{types.TreasuryAddress()}, func(e *env) error {
		info, err = e.staker.Treasury().Info()
		return err
	})
	return
}

func (r *Runtime) treasuryOp(op string, caller types.Address, fn func(*env) error) error {
	return r.exec(op, []types.Address{types.TreasuryAddress(), caller}, func(e *env) error {
		if err := authenticated(caller); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
		e.treasuryTouched = true
		return nil
	})
}

// InitializeTreasury makes caller the treasury admin.
func (r *Runtime) InitializeTreasury(caller types.Address) error {
	return r.treasuryOp("initialize_treasury", caller, func(e *env) error {
		if err := e.staker.InitializeTreasury(caller); err != nil {
			return err
		}
		e.emit(logdb.TreasuryInitialized, types.TreasuryAddress(), caller, types.Address{}, 0, 0)
		return nil
	})
}

// FundTreasury moves amount of the native asset from the admin into the treasury.
func (r *Runtime) FundTreasury(caller types.Address, amount uint64) error {
	return r.treasuryOp("fund_treasury", caller, func(e *env) error {
		if err := e.staker.FundTreasury(caller, amount); err != nil {
			return err
		}
		e.emit(logdb.TreasuryFunded, types.TreasuryAddress(), caller, types.NativeAsset, amount, 0)
		return nil
	})
}

// PauseConversions stops point conversions.
func (r *Runtime) PauseConversions(caller types.Address) error {
	return r.treasuryOp("pause_conversions", caller, func(e *env) error {
		if err := e.staker.PauseConversions(caller); err != nil {
			return err
		}
		e.emit(logdb.ConversionsPaused, types.TreasuryAddress(), caller, types.Address{}, 0, 0)
		return nil
	})
}

// ResumeConversions re-enables point conversions.
func (r *Runtime) ResumeConversions(caller types.Address) error {
	return r.treasuryOp("resume_conversions", caller, func(e *env) error {
		if err := e.staker.ResumeConversions(caller); err != nil {
			return err
		}
		e.emit(logdb.ConversionsResumed, types.TreasuryAddress(), caller, types.Address{}, 0, 0)
		return nil
	})
}
