// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"errors"

	"github.com/vechain/stakepoints/kv"
	"github.com/vechain/stakepoints/stackedmap"
)

var errNotFound = errors.New("not found")

// Stage is an uncommitted, journaled view over a kv.Getter.
// Reads observe staged writes. Nothing reaches the source until the stage is committed,
// so dropping a stage discards everything written to it.
type Stage struct {
	sm *stackedmap.StackedMap[string, []byte]
}

// NewStage creates a stage reading through to src.
func NewStage(src kv.Getter) *Stage {
	sm := stackedmap.New(func(key string) ([]byte, bool, error) {
		val, err := src.Get([]byte(key))
		if err != nil {
			if src.IsNotFound(err) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return val, true, nil
	})
	sm.Push()
	return &Stage{sm}
}

// Get implements kv.Getter.
func (s *Stage) Get(key []byte) ([]byte, error) {
	val, ok, err := s.sm.Get(string(key))
	if err != nil {
		return nil, err
	}
	// deleted keys are staged as nil
	if !ok || val == nil {
		return nil, errNotFound
	}
	return val, nil
}

// Has implements kv.Getter.
func (s *Stage) Has(key []byte) (bool, error) {
	_, err := s.Get(key)
	if err != nil {
		if s.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsNotFound implements kv.Getter.
func (s *Stage) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

// Put implements kv.Putter.
func (s *Stage) Put(key, val []byte) error {
	cpy := make([]byte, len(val))
	copy(cpy, val)
	s.sm.Put(string(key), cpy)
	return nil
}

// Delete implements kv.Putter.
func (s *Stage) Delete(key []byte) error {
	s.sm.Put(string(key), nil)
	return nil
}

// Changes traverses the final value of each key written to the stage, in first-write order.
// A nil value means the key was deleted.
func (s *Stage) Changes(cb func(key, val []byte) bool) {
	var (
		order  []string
		latest = make(map[string][]byte)
	)
	s.sm.Journal(func(key string, val []byte) bool {
		if _, seen := latest[key]; !seen {
			order = append(order, key)
		}
		latest[key] = val
		return true
	})
	for _, key := range order {
		if !cb([]byte(key), latest[key]) {
			return
		}
	}
}

// Len returns the number of distinct keys written to the stage.
func (s *Stage) Len() int {
	n := 0
	s.Changes(func(_, _ []byte) bool {
		n++
		return true
	})
	return n
}

// Commit writes all staged changes into w.
func (s *Stage) Commit(w kv.Putter) (err error) {
	s.Changes(func(key, val []byte) bool {
		if val == nil {
			err = w.Delete(key)
		} else {
			err = w.Put(key, val)
		}
		return err == nil
	})
	return
}
