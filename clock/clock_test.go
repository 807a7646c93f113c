// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual(t *testing.T) {
	c := NewManual(100)
	assert.Equal(t, uint64(100), c.Now())
	assert.Equal(t, uint64(160), c.Advance(60))
	c.Set(50)
	assert.Equal(t, uint64(50), c.Now())
}

func TestSystem(t *testing.T) {
	now := uint64(time.Now().Unix())
	got := System{}.Now()
	assert.GreaterOrEqual(t, got, now)
	assert.LessOrEqual(t, got, now+1)
}

func stubQuery(t *testing.T, f func(string) (time.Duration, error)) {
	prev := query
	query = f
	t.Cleanup(func() { query = prev })
}

func TestCheckOffset(t *testing.T) {
	stubQuery(t, func(server string) (time.Duration, error) {
		assert.Equal(t, DefaultNTPServer, server)
		return -3 * time.Second, nil
	})

	offset, err := CheckOffset(DefaultNTPServer, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, offset)

	boom := errors.New("unreachable")
	stubQuery(t, func(string) (time.Duration, error) { return 0, boom })
	_, err = CheckOffset(DefaultNTPServer, time.Second)
	assert.ErrorIs(t, err, boom)
}

func TestWatchStops(t *testing.T) {
	var calls, reports atomic.Int32
	stubQuery(t, func(string) (time.Duration, error) {
		calls.Add(1)
		return 0, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Watch(ctx, DefaultNTPServer, time.Second, time.Millisecond, func(time.Duration, error) {
			reports.Add(1)
		})
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	assert.GreaterOrEqual(t, reports.Load(), int32(1))
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
