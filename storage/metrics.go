// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import "github.com/vechain/stakepoints/metrics"

var (
	metricCommitDuration = metrics.LazyLoadHistogram("storage_commit_duration_ms", metrics.BucketCommit)
	metricCommitOps      = metrics.LazyLoadCounter("storage_commit_ops_count")
	metricCacheHitMiss   = metrics.LazyLoadGaugeVec("storage_cache_hit_miss", []string{"event"})
)
