// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/kv"
)

// Raw is a single RLP encoded record stored under a fixed key.
type Raw[V any] struct {
	src kv.GetPutter
	key []byte
}

func NewRaw[V any](src kv.GetPutter, key []byte) *Raw[V] {
	return &Raw[V]{src: src, key: key}
}

// Get returns the record and whether it has been set.
func (r *Raw[V]) Get() (value V, exist bool, err error) {
	raw, err := r.src.Get(r.key)
	if err != nil {
		if r.src.IsNotFound(err) {
			return value, false, nil
		}
		return value, false, errors.Wrapf(err, "get %x", r.key)
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, false, errors.Wrapf(err, "decode %x", r.key)
	}
	return value, true, nil
}

// Set stores the record.
func (r *Raw[V]) Set(value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode %x", r.key)
	}
	return r.src.Put(r.key, raw)
}
