// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

// Economics of the points program.
const (
	// PointsPerUnitPerDay is the number of points earned by one whole staked unit in one day.
	PointsPerUnitPerDay uint64 = 1_000_000
	// UnitScale is the number of smallest units per whole unit.
	UnitScale uint64 = 1_000_000_000
	// SecondsPerDay seconds in a day.
	SecondsPerDay uint64 = 86_400
	// PointsPerUnitPayout is the number of points converted into one whole unit by the treasury.
	PointsPerUnitPayout uint64 = 10_000_000_000
)

// Treasury alert thresholds, in whole units.
const (
	TreasuryWarnUnits  uint64 = 25
	TreasuryAlertUnits uint64 = 10
)

var (
	// NativeAsset is the asset staked into accounts and paid out by the treasury.
	NativeAsset = BytesToAddress([]byte("native"))
	// PointsAsset is the asset minted to owners when points are claimed.
	PointsAsset = BytesToAddress([]byte("points"))
)
