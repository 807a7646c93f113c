// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/custody"
	"github.com/vechain/stakepoints/kv"
	"github.com/vechain/stakepoints/log"
	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/staker/treasury"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

const bucketAccounts kv.Bucket = "a"

var logger = log.WithContext("pkg", "staker")

// Staker binds the account ledger to custody and the treasury.
// It reads and writes through src, which the caller commits or discards as a whole.
type Staker struct {
	accounts *storage.Mapping[types.Address, Account]
	custody  *custody.Custody

	treasuryService *treasury.Service
}

// New create a new instance.
func New(src kv.GetPutter, custody *custody.Custody) *Staker {
	return &Staker{
		accounts:        storage.NewMapping[types.Address, Account](src, bucketAccounts),
		custody:         custody,
		treasuryService: treasury.New(src, custody),
	}
}

// Treasury returns the treasury service sharing this staker's store.
func (s *Staker) Treasury() *treasury.Service {
	return s.treasuryService
}

//
// Getters - no state change
//

// Accounts returns every committed stake account, ordered by account address.
func Accounts(db kv.Store) ([]Account, error) {
	var accounts []Account
	err := storage.Scan(db, bucketAccounts, func(_ []byte, acc *Account) error {
		accounts = append(accounts, *acc)
		return nil
	})
	return accounts, err
}

// Account returns the stake account of owner, ErrNotFound when it was never created.
func (s *Staker) Account(owner types.Address) (*Account, error) {
	acc, exist, err := s.accounts.Get(types.StakeAccountAddress(owner))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}
	if !exist {
		return nil, reverts.ErrNotFound
	}
	return &acc, nil
}

// PendingPoints returns the points owner would hold at now, without persisting the accrual.
func (s *Staker) PendingPoints(owner types.Address, now uint64) (uint64, error) {
	acc, err := s.Account(owner)
	if err != nil {
		return 0, err
	}
	return acc.PendingPoints(now)
}

// VaultBalance returns the value held in custody for owner's stake.
func (s *Staker) VaultBalance(owner types.Address) (uint64, error) {
	return s.custody.Balance(types.StakeVaultAddress(owner), types.NativeAsset)
}

//
// Setters - state change
//

// CreateAccount opens the stake account of owner.
func (s *Staker) CreateAccount(owner types.Address, now uint64) (*Account, error) {
	acc := NewAccount(owner, now)
	if err := s.accounts.Insert(acc.Address(), acc); err != nil {
		if errors.Is(err, storage.ErrKeyExists) {
			return nil, reverts.ErrAlreadyExists
		}
		return nil, err
	}
	logger.Debug("account created", "owner", owner)
	return &acc, nil
}

// save replaces a loaded account, it never creates one.
func (s *Staker) save(acc Account) error {
	if err := s.accounts.Update(acc.Address(), acc); err != nil {
		return errors.Wrap(err, "failed to save account")
	}
	return nil
}

// Stake moves amount from owner into the stake vault.
func (s *Staker) Stake(caller, owner types.Address, amount, now uint64) (*Account, error) {
	acc, err := s.Account(owner)
	if err != nil {
		return nil, err
	}
	next, err := acc.Stake(caller, amount, now)
	if err != nil {
		return nil, err
	}
	if err := s.custody.Transfer(owner, next.Vault(), types.NativeAsset, amount); err != nil {
		return nil, err
	}
	if err := s.save(next); err != nil {
		return nil, err
	}
	logger.Debug("staked", "owner", owner, "amount", amount, "staked", next.StakedAmount, "points", next.TotalPoints)
	return &next, nil
}

// Unstake moves amount from the stake vault back to owner.
func (s *Staker) Unstake(caller, owner types.Address, amount, now uint64) (*Account, error) {
	acc, err := s.Account(owner)
	if err != nil {
		return nil, err
	}
	next, err := acc.Unstake(caller, amount, now)
	if err != nil {
		return nil, err
	}
	if err := s.custody.Transfer(next.Vault(), owner, types.NativeAsset, amount); err != nil {
		return nil, err
	}
	if err := s.save(next); err != nil {
		return nil, err
	}
	logger.Debug("unstaked", "owner", owner, "amount", amount, "staked", next.StakedAmount, "points", next.TotalPoints)
	return &next, nil
}

// GetPoints accrues the account to now, persists it and returns its points.
func (s *Staker) GetPoints(caller, owner types.Address, now uint64) (*Account, error) {
	acc, err := s.Account(owner)
	if err != nil {
		return nil, err
	}
	next, err := acc.Refresh(caller, now)
	if err != nil {
		return nil, err
	}
	if err := s.save(next); err != nil {
		return nil, err
	}
	return &next, nil
}

// ClaimPoints resets the points of the account and mints them to owner as the points asset.
func (s *Staker) ClaimPoints(caller, owner types.Address, now uint64) (*Account, uint64, error) {
	acc, err := s.Account(owner)
	if err != nil {
		return nil, 0, err
	}
	next, claimed, err := acc.Claim(caller, now)
	if err != nil {
		return nil, 0, err
	}
	if err := s.custody.Mint(owner, types.PointsAsset, claimed); err != nil {
		return nil, 0, err
	}
	if err := s.save(next); err != nil {
		return nil, 0, err
	}
	logger.Debug("points claimed", "owner", owner, "points", claimed)
	return &next, claimed, nil
}

// ConvertPoints spends points of the account for a native payout from the treasury.
func (s *Staker) ConvertPoints(caller, owner types.Address, points, now uint64) (*Account, uint64, error) {
	if points == 0 {
		return nil, 0, reverts.ErrInvalidAmount
	}
	acc, err := s.Account(owner)
	if err != nil {
		return nil, 0, err
	}
	if err := s.treasuryService.CheckOpen(); err != nil {
		return nil, 0, err
	}
	next, err := acc.Spend(caller, points, now)
	if err != nil {
		return nil, 0, err
	}
	payout := PayoutFor(points)
	if payout == 0 {
		return nil, 0, reverts.ErrPayoutTooSmall
	}
	if err := s.treasuryService.Payout(owner, payout); err != nil {
		return nil, 0, err
	}
	if err := s.save(next); err != nil {
		return nil, 0, err
	}
	logger.Debug("points converted", "owner", owner, "points", points, "payout", payout, "remaining", next.TotalPoints)
	return &next, payout, nil
}

// InitializeTreasury creates the treasury owned by admin.
func (s *Staker) InitializeTreasury(admin types.Address) error {
	return s.treasuryService.Initialize(admin)
}

// FundTreasury moves amount from admin into the treasury.
func (s *Staker) FundTreasury(admin types.Address, amount uint64) error {
	return s.treasuryService.Fund(admin, amount)
}

// PauseConversions stops point conversions until resumed.
func (s *Staker) PauseConversions(admin types.Address) error {
	return s.treasuryService.SetPaused(admin, true)
}

// ResumeConversions re-enables point conversions.
func (s *Staker) ResumeConversions(admin types.Address) error {
	return s.treasuryService.SetPaused(admin, false)
}
