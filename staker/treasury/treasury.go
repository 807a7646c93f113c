// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"github.com/vechain/stakepoints/types"
)

// Treasury is the record of the payout pool which converts points into native value.
type Treasury struct {
	Admin        types.Address
	TotalFunded  uint64
	TotalPaidOut uint64
	Paused       bool
}

// Info is a point in time view of the treasury.
type Info struct {
	Treasury
	Address types.Address
	Balance uint64
}
