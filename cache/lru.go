// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU a LRU cache of raw records extending golang-lru, with hit/miss stats.
type LRU struct {
	cache *lru.Cache
	stats Stats
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU(maxSize int) (*LRU, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: cache}, nil
}

// Loader defines loader to load value.
type Loader func(key string) ([]byte, error)

// GetOrLoad first try to get from cache, do load if missed.
func (l *LRU) GetOrLoad(key string, loader Loader) ([]byte, error) {
	if v, ok := l.cache.Get(key); ok {
		l.stats.Hit()
		return v.([]byte), nil
	}
	l.stats.Miss()
	v, err := loader(key)
	if err != nil {
		return nil, err
	}

	l.cache.Add(key, v)
	return v, nil
}

// Add adds or replaces the cached value of key.
func (l *LRU) Add(key string, val []byte) {
	l.cache.Add(key, val)
}

// Remove evicts key.
func (l *LRU) Remove(key string) {
	l.cache.Remove(key)
}

// Len returns the number of cached entries.
func (l *LRU) Len() int {
	return l.cache.Len()
}

// Stats returns the hit/miss stats of lookups made by GetOrLoad.
func (l *LRU) Stats() *Stats {
	return &l.stats
}
