// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"math"

	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/custody"
	"github.com/vechain/stakepoints/kv"
	"github.com/vechain/stakepoints/log"
	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

var (
	logger = log.WithContext("pkg", "treasury")

	keyTreasury = types.DeriveAddress(types.SeedTreasuryConfig).Bytes()
)

type Service struct {
	record  *storage.Raw[Treasury]
	custody *custody.Custody
	addr    types.Address
}

func New(src kv.GetPutter, custody *custody.Custody) *Service {
	return &Service{
		record:  storage.NewRaw[Treasury](src, keyTreasury),
		custody: custody,
		addr:    types.TreasuryAddress(),
	}
}

// Address returns the custody holder of the treasury funds.
func (s *Service) Address() types.Address {
	return s.addr
}

// Get returns the treasury record, or ErrNotFound before initialization.
func (s *Service) Get() (*Treasury, error) {
	t, exist, err := s.record.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get treasury")
	}
	if !exist {
		return nil, reverts.ErrNotFound
	}
	return &t, nil
}

// Info returns the treasury record along with its balance.
func (s *Service) Info() (*Info, error) {
	t, err := s.Get()
	if err != nil {
		return nil, err
	}
	bal, err := s.custody.Balance(s.addr, types.NativeAsset)
	if err != nil {
		return nil, err
	}
	return &Info{Treasury: *t, Address: s.addr, Balance: bal}, nil
}

// Initialize creates the treasury owned by admin.
func (s *Service) Initialize(admin types.Address) error {
	_, exist, err := s.record.Get()
	if err != nil {
		return err
	}
	if exist {
		return reverts.ErrAlreadyExists
	}
	logger.Info("treasury initialized", "admin", admin)
	return s.record.Set(Treasury{Admin: admin})
}

func (s *Service) adminOnly(caller types.Address) (*Treasury, error) {
	t, err := s.Get()
	if err != nil {
		return nil, err
	}
	if t.Admin != caller {
		return nil, reverts.ErrUnauthorized
	}
	return t, nil
}

// Fund moves amount of native value from admin into the treasury.
func (s *Service) Fund(caller types.Address, amount uint64) error {
	if amount == 0 {
		return reverts.ErrInvalidAmount
	}
	t, err := s.adminOnly(caller)
	if err != nil {
		return err
	}
	if t.TotalFunded > math.MaxUint64-amount {
		return reverts.ErrOverflow
	}
	if err := s.custody.Transfer(caller, s.addr, types.NativeAsset, amount); err != nil {
		return err
	}
	t.TotalFunded += amount
	logger.Info("treasury funded", "amount", amount, "totalFunded", t.TotalFunded)
	return s.record.Set(*t)
}

// SetPaused pauses or resumes point conversions.
func (s *Service) SetPaused(caller types.Address, paused bool) error {
	t, err := s.adminOnly(caller)
	if err != nil {
		return err
	}
	t.Paused = paused
	if paused {
		logger.Info("point conversions paused")
	} else {
		logger.Info("point conversions resumed")
	}
	return s.record.Set(*t)
}

// CheckOpen fails when conversions cannot be served at all.
func (s *Service) CheckOpen() error {
	t, err := s.Get()
	if err != nil {
		return err
	}
	if t.Paused {
		return reverts.ErrConversionsPaused
	}
	return nil
}

// Payout pays amount of native value to the receiver.
func (s *Service) Payout(to types.Address, amount uint64) error {
	t, err := s.Get()
	if err != nil {
		return err
	}
	if t.Paused {
		return reverts.ErrConversionsPaused
	}
	bal, err := s.custody.Balance(s.addr, types.NativeAsset)
	if err != nil {
		return err
	}
	if bal < amount {
		return reverts.ErrInsufficientTreasury
	}
	if t.TotalPaidOut > math.MaxUint64-amount {
		return reverts.ErrOverflow
	}
	if err := s.custody.Transfer(s.addr, to, types.NativeAsset, amount); err != nil {
		return err
	}
	t.TotalPaidOut += amount
	if err := s.record.Set(*t); err != nil {
		return err
	}

	remaining := bal - amount
	switch {
	case remaining < types.TreasuryAlertUnits*types.UnitScale:
		logger.Error("treasury nearly drained, refund urgently", "remaining", remaining)
	case remaining < types.TreasuryWarnUnits*types.UnitScale:
		logger.Warn("treasury running low, consider refunding", "remaining", remaining)
	}
	return nil
}
