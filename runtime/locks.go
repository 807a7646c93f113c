// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"bytes"
	"slices"
	"sync"

	"github.com/vechain/stakepoints/types"
)

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// keyedLocks serializes work per resource. Locks are always taken in address order,
// so two callers touching overlapping resources can never deadlock.
type keyedLocks struct {
	mu      sync.Mutex
	entries map[types.Address]*lockEntry
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{entries: make(map[types.Address]*lockEntry)}
}

// Lock acquires every key and returns the release func.
func (l *keyedLocks) Lock(keys ...types.Address) (unlock func()) {
	keys = slices.Clone(keys)
	slices.SortFunc(keys, func(a, b types.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	keys = slices.Compact(keys)

	held := make([]*lockEntry, 0, len(keys))
	for _, key := range keys {
		e := l.acquire(key)
		e.mu.Lock()
		held = append(held, e)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.release(keys[i])
		}
	}
}

func (l *keyedLocks) acquire(key types.Address) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *keyedLocks) release(key types.Address) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// size returns the number of keys currently held or waited on.
func (l *keyedLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
