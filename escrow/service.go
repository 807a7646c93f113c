// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package escrow

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/custody"
	"github.com/vechain/stakepoints/kv"
	"github.com/vechain/stakepoints/log"
	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

const (
	bucketEscrows kv.Bucket = "e"
	bucketSettled kv.Bucket = "E"
)

var logger = log.WithContext("pkg", "escrow")

type Service struct {
	escrows *storage.Mapping[types.Address, Escrow]
	settled *storage.Mapping[types.Address, Settled]
	custody *custody.Custody
}

func New(src kv.GetPutter, custody *custody.Custody) *Service {
	return &Service{
		escrows: storage.NewMapping[types.Address, Escrow](src, bucketEscrows),
		settled: storage.NewMapping[types.Address, Settled](src, bucketSettled),
		custody: custody,
	}
}

// Get returns the open escrow id. A claimed escrow yields ErrAlreadyClaimed along with its settlement.
func (s *Service) Get(id types.Address) (*Escrow, *Settled, error) {
	e, exist, err := s.escrows.Get(id)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get escrow")
	}
	if exist {
		return &e, nil, nil
	}
	settled, exist, err := s.settled.Get(id)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get settled escrow")
	}
	if exist {
		return nil, &settled, reverts.ErrAlreadyClaimed
	}
	return nil, nil, reverts.ErrNotFound
}

// Initialize locks amount of mint from initializer into the vault of id.
func (s *Service) Initialize(initializer, id, receiver, mint types.Address, amount uint64) (*Escrow, error) {
	if amount == 0 {
		return nil, reverts.ErrInvalidAmount
	}
	if _, _, err := s.Get(id); !errors.Is(err, reverts.ErrNotFound) {
		if err == nil || errors.Is(err, reverts.ErrAlreadyClaimed) {
			return nil, reverts.ErrAlreadyExists
		}
		return nil, err
	}

	e := Escrow{
		Initializer: initializer,
		Receiver:    receiver,
		Mint:        mint,
		Amount:      amount,
	}
	if err := s.custody.Transfer(initializer, Vault(id), mint, amount); err != nil {
		return nil, err
	}
	if err := s.escrows.Insert(id, e); err != nil {
		return nil, err
	}
	logger.Debug("escrow initialized", "id", id, "receiver", receiver, "amount", amount)
	return &e, nil
}

// Claim releases the whole escrow of id to its receiver. Only the receiver may claim, and only once.
func (s *Service) Claim(caller, id types.Address, now uint64) (*Settled, error) {
	e, _, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if caller != e.Receiver {
		return nil, reverts.ErrUnauthorized
	}
	if err := s.custody.Transfer(Vault(id), e.Receiver, e.Mint, e.Amount); err != nil {
		return nil, err
	}
	if err := s.escrows.Delete(id); err != nil {
		return nil, err
	}
	settled := Settled{Escrow: *e, ClaimedAt: now}
	if err := s.settled.Set(id, settled); err != nil {
		return nil, err
	}
	logger.Debug("escrow claimed", "id", id, "receiver", e.Receiver, "amount", e.Amount)
	return &settled, nil
}
