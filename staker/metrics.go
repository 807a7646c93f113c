// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/stakepoints/metrics"
	"github.com/vechain/stakepoints/reverts"
)

var metricOps = metrics.LazyLoadCounterVec("staker_ops_count", []string{"op", "result"})

// RecordOp counts a finished operation by result.
func RecordOp(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case reverts.IsRevertErr(err):
		result = "reverted"
	default:
		result = "error"
	}
	metricOps().AddWithLabel(1, map[string]string{"op": op, "result": result})
}
