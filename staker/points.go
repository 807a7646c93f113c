// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/types"
)

var (
	pointsRate    = uint256.NewInt(types.PointsPerUnitPerDay)
	pointsDivisor = new(uint256.Int).Mul(uint256.NewInt(types.UnitScale), uint256.NewInt(types.SecondsPerDay))

	unitScale     = uint256.NewInt(types.UnitScale)
	payoutDivisor = uint256.NewInt(types.PointsPerUnitPayout)
)

// EarnedPoints returns the points earned by staked smallest units held for elapsed seconds:
//
//	floor(staked * elapsed * PointsPerUnitPerDay / (UnitScale * SecondsPerDay))
//
// The product is formed in 256 bits; a result beyond uint64 is ErrOverflow.
func EarnedPoints(staked, elapsed uint64) (uint64, error) {
	x := new(uint256.Int).Mul(uint256.NewInt(staked), uint256.NewInt(elapsed))
	x.Mul(x, pointsRate)
	x.Div(x, pointsDivisor)
	if !x.IsUint64() {
		return 0, reverts.ErrOverflow
	}
	return x.Uint64(), nil
}

// PayoutFor returns the smallest units paid by the treasury for points.
func PayoutFor(points uint64) uint64 {
	x := new(uint256.Int).Mul(uint256.NewInt(points), unitScale)
	// points * UnitScale / PointsPerUnitPayout never exceeds points
	return x.Div(x, payoutDivisor).Uint64()
}

func checkedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, reverts.ErrOverflow
	}
	return a + b, nil
}
