// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthyByDefault(t *testing.T) {
	h := New(time.Second)

	status, err := h.Status()
	require.NoError(t, err)

	assert.True(t, status.Healthy)
	assert.Nil(t, status.Commits.LastCommit)
	assert.False(t, status.Clock.Checked)
}

func TestJournalFailures(t *testing.T) {
	h := New(time.Second)
	now := time.Now()

	h.Committed(now, errors.New("disk full"))
	status, err := h.Status()
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.False(t, status.Commits.JournalHealthy)
	assert.Equal(t, uint64(1), status.Commits.JournalFailures)
	require.NotNil(t, status.Commits.LastCommit)
	assert.True(t, now.Equal(*status.Commits.LastCommit))

	// a later successful write recovers, the failure count stays
	h.Committed(now.Add(time.Second), nil)
	status, err = h.Status()
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(1), status.Commits.JournalFailures)
}

func TestClockDrift(t *testing.T) {
	h := New(time.Second)

	h.ClockOffset(2*time.Second, nil)
	status, err := h.Status()
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.True(t, status.Clock.Drifted)

	// failed checks keep the last measurement
	h.ClockOffset(0, errors.New("timeout"))
	status, err = h.Status()
	require.NoError(t, err)
	assert.True(t, status.Clock.Drifted)

	h.ClockOffset(100*time.Millisecond, nil)
	status, err = h.Status()
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.True(t, status.Clock.Checked)
}
