// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/staker"
	"github.com/vechain/stakepoints/types"
)

// AccountState is a stake account as seen at Now.
type AccountState struct {
	staker.Account
	PendingPoints uint64
	VaultBalance  uint64
	Now           uint64
}

// Account returns the stored record of owner along with its pending points.
func (r *Runtime) Account(owner types.Address) (state *AccountState, err error) {
	err = r.view(accountResources(owner), func(e *env) error {
		acc, err := e.staker.Account(owner)
		if err != nil {
			return err
		}
		pending, err := acc.PendingPoints(e.now)
		if err != nil {
			return err
		}
		vault, err := e.staker.VaultBalance(owner)
		if err != nil {
			return err
		}
		state = &AccountState{Account: *acc, PendingPoints: pending, VaultBalance: vault, Now: e.now}
		return nil
	})
	return
}

// CreateAccount opens the stake account of caller.
func (r *Runtime) CreateAccount(caller types.Address) (acc *staker.Account, err error) {
	err = r.exec("create_account", accountResources(caller), func(e *env) error {
		if err := authenticated(caller); err != nil {
			return err
		}
		if acc, err = e.staker.CreateAccount(caller, e.now); err != nil {
			return err
		}
		e.emit(logdb.AccountCreated, caller, caller, types.Address{}, 0, 0)
		return nil
	})
	return
}

// Stake moves amount of the native asset from owner into the stake vault.
func (r *Runtime) Stake(caller, owner types.Address, amount uint64) (acc *staker.Account, err error) {
	err = r.exec("stake", accountResources(owner), func(e *env) error {
		if acc, err = e.staker.Stake(caller, owner, amount, e.now); err != nil {
			return err
		}
		e.emit(logdb.Staked, owner, caller, types.NativeAsset, amount, acc.TotalPoints)
		return nil
	})
	return
}

// Unstake moves amount of the native asset from the stake vault back to owner.
func (r *Runtime) Unstake(caller, owner types.Address, amount uint64) (acc *staker.Account, err error) {
	err = r.exec("unstake", accountResources(owner), func(e *env) error {
		if acc, err = e.staker.Unstake(caller, owner, amount, e.now); err != nil {
			return err
		}
		e.emit(logdb.Unstaked, owner, caller, types.NativeAsset, amount, acc.TotalPoints)
		return nil
	})
	return
}

// GetPoints settles the points of owner up to now.
func (r *Runtime) GetPoints(caller, owner types.Address) (acc *staker.Account, err error) {
	err = r.exec("get_points", accountResources(owner), func(e *env) error {
		if acc, err = e.staker.GetPoints(caller, owner, e.now); err != nil {
			return err
		}
		e.emit(logdb.PointsRefreshed, owner, caller, types.Address{}, 0, acc.TotalPoints)
		return nil
	})
	return
}

// ClaimPoints settles and mints every point of owner, returning the claimed count.
func (r *Runtime) ClaimPoints(caller, owner types.Address) (acc *staker.Account, claimed uint64, err error) {
	err = r.exec("claim_points", accountResources(owner, types.PointsAsset), func(e *env) error {
		if acc, claimed, err = e.staker.ClaimPoints(caller, owner, e.now); err != nil {
			return err
		}
		e.emit(logdb.PointsClaimed, owner, caller, types.PointsAsset, 0, claimed)
		return nil
	})
	return
}

// ConvertPoints spends points of owner for a native payout from the treasury.
func (r *Runtime) ConvertPoints(caller, owner types.Address, points uint64) (acc *staker.Account, payout uint64, err error) {
	err = r.exec("convert_points", accountResources(owner, types.TreasuryAddress()), func(e *env) error {
		if acc, payout, err = e.staker.ConvertPoints(caller, owner, points, e.now); err != nil {
			return err
		}
		e.treasuryTouched = true
		e.emit(logdb.PointsConverted, owner, caller, types.NativeAsset, payout, points)
		return nil
	})
	return
}
