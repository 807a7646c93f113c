// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/cache"
	"github.com/vechain/stakepoints/kv"
	"github.com/vechain/stakepoints/log"
)

var logger = log.WithContext("pkg", "storage")

// Store is the committed record store, a kv.Store fronted by a cache of raw records.
// Writers must serialize access per key; the runtime does that with its resource locks.
// Readers need no lock: a cache fill never overtakes a commit.
type Store struct {
	db    kv.Store
	cache *cache.LRU
	// held shared by cache fills, exclusively while a batch is written and cached
	fillMu      sync.RWMutex
	lastLogTime atomic.Int64
}

// NewStore creates a store over db caching up to cacheSize records.
func NewStore(db kv.Store, cacheSize int) (*Store, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	c, err := cache.NewLRU(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create record cache")
	}
	s := &Store{db: db, cache: c}
	s.lastLogTime.Store(time.Now().UnixNano())
	return s, nil
}

// DB returns the underlying kv store.
func (s *Store) DB() kv.Store {
	return s.db
}

// Get implements kv.Getter.
func (s *Store) Get(key []byte) ([]byte, error) {
	s.fillMu.RLock()
	defer s.fillMu.RUnlock()

	return s.cache.GetOrLoad(string(key), func(string) ([]byte, error) {
		return s.db.Get(key)
	})
}

// Has implements kv.Getter.
func (s *Store) Has(key []byte) (bool, error) {
	return s.db.Has(key)
}

// IsNotFound implements kv.Getter.
func (s *Store) IsNotFound(err error) bool {
	return s.db.IsNotFound(err)
}

// NewStage opens a stage on top of the committed records.
func (s *Store) NewStage() *Stage {
	return NewStage(s)
}

// Commit writes the stage as one atomic batch, then refreshes the cache.
func (s *Store) Commit(stage *Stage) error {
	start := time.Now()
	bulk := s.db.Bulk()
	if err := stage.Commit(bulk); err != nil {
		return errors.Wrap(err, "stage commit")
	}
	n := bulk.Len()

	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	if err := bulk.Write(); err != nil {
		// the cache may hold values the batch was about to replace, drop them
		stage.Changes(func(key, _ []byte) bool {
			s.cache.Remove(string(key))
			return true
		})
		return errors.Wrap(err, "write batch")
	}
	stage.Changes(func(key, val []byte) bool {
		if val == nil {
			s.cache.Remove(string(key))
		} else {
			s.cache.Add(string(key), val)
		}
		return true
	})
	metricCommitDuration().Observe(time.Since(start).Milliseconds())
	metricCommitOps().Add(int64(n))
	s.logStats()
	return nil
}

func (s *Store) logStats() {
	now := time.Now().UnixNano()
	last := s.lastLogTime.Swap(now)

	if now-last > int64(time.Second*20) {
		snap := s.cache.Stats().Snapshot()
		if snap.Changed {
			hitrate := "n/a"
			if rate, ok := snap.HitRate(); ok {
				hitrate = fmt.Sprintf("%.3f", rate)
			}
			logger.Info("record cache stats", "lookups", snap.Lookups(), "hitrate", hitrate)
		}
		metricCacheHitMiss().SetWithLabel(snap.Hit, map[string]string{"event": "hit"})
		metricCacheHitMiss().SetWithLabel(snap.Miss, map[string]string{"event": "miss"})
	} else {
		s.lastLogTime.CompareAndSwap(now, last)
	}
}
