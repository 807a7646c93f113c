// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsSnapshot(t *testing.T) {
	var cs Stats

	snap := cs.Snapshot()
	_, ok := snap.HitRate()
	assert.False(t, ok)
	assert.False(t, snap.Changed)

	cs.Hit()
	cs.Miss()
	snap = cs.Snapshot()
	assert.Equal(t, Snapshot{Hit: 1, Miss: 1, Changed: true}, snap)
	rate, ok := snap.HitRate()
	assert.True(t, ok)
	assert.Equal(t, 0.5, rate)

	// same rate, nothing to report
	cs.Hit()
	cs.Miss()
	assert.False(t, cs.Snapshot().Changed)

	assert.Equal(t, int64(3), cs.Hit())
	snap = cs.Snapshot()
	assert.True(t, snap.Changed)
	assert.Equal(t, int64(5), snap.Lookups())
}
