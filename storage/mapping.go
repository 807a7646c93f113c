// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/kv"
)

var (
	// ErrKeyExists is returned by Insert when the key already holds a record.
	ErrKeyExists = errors.New("storage: key exists")
	// ErrKeyNotFound is returned by Update when the key holds no record.
	ErrKeyNotFound = errors.New("storage: key not found")
)

type Key interface {
	Bytes() []byte
}

// Mapping is a typed record table stored in a bucket, values are RLP encoded.
type Mapping[K Key, V any] struct {
	src    kv.GetPutter
	bucket kv.Bucket
}

func NewMapping[K Key, V any](src kv.GetPutter, bucket kv.Bucket) *Mapping[K, V] {
	return &Mapping[K, V]{src: src, bucket: bucket}
}

// Get returns the record stored under key. Absent keys yield the zero value and false.
func (m *Mapping[K, V]) Get(key K) (value V, exist bool, err error) {
	raw, err := m.src.Get(m.bucket.Key(key.Bytes()))
	if err != nil {
		if m.src.IsNotFound(err) {
			return value, false, nil
		}
		return value, false, errors.Wrapf(err, "get %s record", string(m.bucket))
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, false, errors.Wrapf(err, "decode %s record", string(m.bucket))
	}
	return value, true, nil
}

// Exists reports whether key holds a record.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	return m.src.Has(m.bucket.Key(key.Bytes()))
}

// Set stores the record, replacing any previous one.
func (m *Mapping[K, V]) Set(key K, value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s record", string(m.bucket))
	}
	return m.src.Put(m.bucket.Key(key.Bytes()), raw)
}

// Insert stores a new record and fails with ErrKeyExists on duplicates.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	exist, err := m.Exists(key)
	if err != nil {
		return err
	}
	if exist {
		return ErrKeyExists
	}
	return m.Set(key, value)
}

// Update replaces an existing record and fails with ErrKeyNotFound otherwise.
func (m *Mapping[K, V]) Update(key K, value V) error {
	exist, err := m.Exists(key)
	if err != nil {
		return err
	}
	if !exist {
		return ErrKeyNotFound
	}
	return m.Set(key, value)
}

// Delete removes the record.
func (m *Mapping[K, V]) Delete(key K) error {
	return m.src.Delete(m.bucket.Key(key.Bytes()))
}

// Scan decodes every committed record of bucket in key order. Keys passed to fn are
// stripped of the bucket name. Staged changes are not visible.
func Scan[V any](db kv.Store, bucket kv.Bucket, fn func(key []byte, value *V) error) error {
	it := bucket.Iterate(db)
	defer it.Release()
	for it.Next() {
		var v V
		if err := rlp.DecodeBytes(it.Value(), &v); err != nil {
			return errors.Wrapf(err, "decode %x", it.Key())
		}
		if err := fn(it.Key(), &v); err != nil {
			return err
		}
	}
	return it.Error()
}
