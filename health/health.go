// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type Commits struct {
	LastCommit      *time.Time `json:"lastCommit"`
	JournalFailures uint64     `json:"journalFailures"`
	JournalHealthy  bool       `json:"journalHealthy"`
}

type Clock struct {
	Checked bool   `json:"checked"`
	Offset  string `json:"offset"`
	Drifted bool   `json:"drifted"`
}

type Status struct {
	Healthy bool     `json:"healthy"`
	Commits *Commits `json:"commits"`
	Clock   *Clock   `json:"clock"`
}

// Health tracks the liveness of the ledger: the outcome of the latest journal write
// and the last measured clock offset.
type Health struct {
	lock            sync.RWMutex
	tolerance       time.Duration
	lastCommit      time.Time
	journalFailures uint64
	journalFailing  bool
	clockChecked    bool
	clockOffset     time.Duration
}

// New creates a Health which reports unhealthy once the clock drifts beyond tolerance.
func New(tolerance time.Duration) *Health {
	return &Health{tolerance: tolerance}
}

// Committed records a committed operation and whether its events reached the journal.
func (h *Health) Committed(at time.Time, journalErr error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastCommit = at
	h.journalFailing = journalErr != nil
	if journalErr != nil {
		h.journalFailures++
	}
}

// ClockOffset records the result of a clock check. Failed checks are ignored.
func (h *Health) ClockOffset(offset time.Duration, err error) {
	if err != nil {
		return
	}
	h.lock.Lock()
	defer h.lock.Unlock()

	h.clockChecked = true
	h.clockOffset = offset
}

func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	commits := &Commits{
		JournalFailures: h.journalFailures,
		JournalHealthy:  !h.journalFailing,
	}
	if !h.lastCommit.IsZero() {
		last := h.lastCommit
		commits.LastCommit = &last
	}

	drifted := h.clockChecked && h.clockOffset > h.tolerance
	return &Status{
		Healthy: !h.journalFailing && !drifted,
		Commits: commits,
		Clock: &Clock{
			Checked: h.clockChecked,
			Offset:  common.PrettyDuration(h.clockOffset).String(),
			Drifted: drifted,
		},
	}, nil
}
