// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/types"
)

// Account is the per-owner stake ledger.
// Points accrue lazily: every transition first brings TotalPoints up to the given time.
type Account struct {
	Owner          types.Address
	StakedAmount   uint64
	TotalPoints    uint64
	LastUpdateTime uint64
}

// NewAccount returns an empty account of owner starting at now.
func NewAccount(owner types.Address, now uint64) Account {
	return Account{Owner: owner, LastUpdateTime: now}
}

// Address returns the derived ledger address of the account.
func (a Account) Address() types.Address {
	return types.StakeAccountAddress(a.Owner)
}

// Vault returns the custody holder of the staked value.
func (a Account) Vault() types.Address {
	return types.StakeVaultAddress(a.Owner)
}

// PendingPoints returns TotalPoints as it would be after accruing to now.
func (a Account) PendingPoints(now uint64) (uint64, error) {
	acc, err := a.Accrue(now)
	if err != nil {
		return 0, err
	}
	return acc.TotalPoints, nil
}

// Accrue credits the points earned since LastUpdateTime and moves LastUpdateTime to now.
// It is a no-op when now equals LastUpdateTime.
func (a Account) Accrue(now uint64) (Account, error) {
	if now < a.LastUpdateTime {
		return a, reverts.ErrClockSkew
	}
	elapsed := now - a.LastUpdateTime
	if elapsed > 0 && a.StakedAmount > 0 {
		earned, err := EarnedPoints(a.StakedAmount, elapsed)
		if err != nil {
			return a, err
		}
		total, err := checkedAdd(a.TotalPoints, earned)
		if err != nil {
			return a, err
		}
		a.TotalPoints = total
	}
	a.LastUpdateTime = now
	return a, nil
}

func (a Account) authorize(caller types.Address) error {
	if caller != a.Owner {
		return reverts.ErrUnauthorized
	}
	return nil
}

// Stake accrues and then adds amount to the staked balance.
func (a Account) Stake(caller types.Address, amount, now uint64) (Account, error) {
	if err := a.authorize(caller); err != nil {
		return a, err
	}
	if amount == 0 {
		return a, reverts.ErrInvalidAmount
	}
	next, err := a.Accrue(now)
	if err != nil {
		return a, err
	}
	if next.StakedAmount, err = checkedAdd(next.StakedAmount, amount); err != nil {
		return a, err
	}
	return next, nil
}

// Unstake accrues and then removes amount from the staked balance. Points are kept.
func (a Account) Unstake(caller types.Address, amount, now uint64) (Account, error) {
	if err := a.authorize(caller); err != nil {
		return a, err
	}
	if amount == 0 {
		return a, reverts.ErrInvalidAmount
	}
	if amount > a.StakedAmount {
		return a, reverts.ErrInsufficientStake
	}
	next, err := a.Accrue(now)
	if err != nil {
		return a, err
	}
	next.StakedAmount -= amount
	return next, nil
}

// Refresh accrues to now on behalf of the owner.
func (a Account) Refresh(caller types.Address, now uint64) (Account, error) {
	if err := a.authorize(caller); err != nil {
		return a, err
	}
	return a.Accrue(now)
}

// Claim accrues, then takes all points out of the account.
// Claiming with no points is ErrNothingToClaim.
func (a Account) Claim(caller types.Address, now uint64) (Account, uint64, error) {
	next, err := a.Refresh(caller, now)
	if err != nil {
		return a, 0, err
	}
	claimed := next.TotalPoints
	if claimed == 0 {
		return a, 0, reverts.ErrNothingToClaim
	}
	next.TotalPoints = 0
	return next, claimed, nil
}

// Spend accrues, then removes points for a conversion.
func (a Account) Spend(caller types.Address, points, now uint64) (Account, error) {
	if err := a.authorize(caller); err != nil {
		return a, err
	}
	if points == 0 {
		return a, reverts.ErrInvalidAmount
	}
	next, err := a.Accrue(now)
	if err != nil {
		return a, err
	}
	if next.TotalPoints < points {
		return a, reverts.ErrInsufficientPoints
	}
	next.TotalPoints -= points
	return next, nil
}
