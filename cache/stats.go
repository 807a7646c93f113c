// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups.
type Stats struct {
	hit, miss atomic.Int64
	// hit rate in permille at the last Snapshot
	lastRate atomic.Int32
}

// Snapshot is a point in time view of Stats.
type Snapshot struct {
	Hit, Miss int64
	// Changed tells whether the hit rate moved since the previous snapshot.
	Changed bool
}

// Lookups returns the number of lookups made.
func (s Snapshot) Lookups() int64 { return s.Hit + s.Miss }

// HitRate returns hits over lookups, or false when there was none.
func (s Snapshot) HitRate() (float64, bool) {
	if s.Lookups() == 0 {
		return 0, false
	}
	return float64(s.Hit) / float64(s.Lookups()), true
}

// Hit records a hit.
func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

// Miss records a miss.
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Snapshot reads the counters.
func (cs *Stats) Snapshot() Snapshot {
	snap := Snapshot{Hit: cs.hit.Load(), Miss: cs.miss.Load()}
	rate, _ := snap.HitRate()
	permille := int32(rate * 1000)
	snap.Changed = cs.lastRate.Swap(permille) != permille
	return snap
}
