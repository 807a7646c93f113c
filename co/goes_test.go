// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoes(t *testing.T) {
	var g Goes
	release := make(chan struct{})
	for range 3 {
		g.Go(func() { <-release })
	}
	assert.Eventually(t, func() bool { return g.Running() == 3 }, time.Second, time.Millisecond)
	assert.False(t, g.WaitTimeout(10*time.Millisecond))

	close(release)
	assert.True(t, g.WaitTimeout(time.Second))
	assert.Equal(t, int64(0), g.Running())
	g.Wait()
}
