// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepoints/staker"
	"github.com/vechain/stakepoints/types"
)

// Account for marshal stake account
type Account struct {
	Owner          types.Address `json:"owner"`
	Address        types.Address `json:"address"`
	Vault          types.Address `json:"vault"`
	StakedAmount   uint64        `json:"stakedAmount"`
	TotalPoints    uint64        `json:"totalPoints"`
	LastUpdateTime uint64        `json:"lastUpdateTime"`
}

func convertAccount(acc *staker.Account) *Account {
	return &Account{
		Owner:          acc.Owner,
		Address:        acc.Address(),
		Vault:          acc.Vault(),
		StakedAmount:   acc.StakedAmount,
		TotalPoints:    acc.TotalPoints,
		LastUpdateTime: acc.LastUpdateTime,
	}
}

// AccountState is an account with the points it would hold now.
type AccountState struct {
	*Account
	PendingPoints uint64 `json:"pendingPoints"`
	VaultBalance  uint64 `json:"vaultBalance"`
	Now           uint64 `json:"now"`
}

// AmountBody is the body of stake, unstake and convert requests. Decimal or 0x prefixed hex.
type AmountBody struct {
	Amount *math.HexOrDecimal64 `json:"amount"`
}

type ClaimResult struct {
	Account *Account `json:"account"`
	Claimed uint64   `json:"claimed"`
}

type ConvertResult struct {
	Account *Account `json:"account"`
	Points  uint64   `json:"points"`
	Payout  uint64   `json:"payout"`
}
