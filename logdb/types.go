// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/vechain/stakepoints/types"
)

// Kind names a committed ledger operation.
type Kind string

const (
	AccountCreated      Kind = "account_created"
	Staked              Kind = "staked"
	Unstaked            Kind = "unstaked"
	PointsRefreshed     Kind = "points_refreshed"
	PointsClaimed       Kind = "points_claimed"
	PointsConverted     Kind = "points_converted"
	TreasuryInitialized Kind = "treasury_initialized"
	TreasuryFunded      Kind = "treasury_funded"
	ConversionsPaused   Kind = "conversions_paused"
	ConversionsResumed  Kind = "conversions_resumed"
	EscrowInitialized   Kind = "escrow_initialized"
	EscrowClaimed       Kind = "escrow_claimed"
	FaucetMinted        Kind = "faucet_minted"
)

// Event is a committed ledger operation as kept in the journal.
type Event struct {
	Seq     uint64 // assigned on write
	Time    uint64
	Kind    Kind
	Account types.Address // owner, escrow id, treasury or faucet receiver
	Caller  types.Address
	Asset   types.Address
	Amount  uint64
	Points  uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds event time, inclusive. To below From means unbounded.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventFilter filter
type EventFilter struct {
	Account *types.Address
	Kinds   []Kind
	Range   *Range
	Options *Options
	Order   Order // default asc
}
