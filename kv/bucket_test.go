// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

type mem map[string]string

func (m mem) Get(k []byte) ([]byte, error) {
	if v, ok := m[string(k)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (m mem) Has(k []byte) (bool, error) {
	_, ok := m[string(k)]
	return ok, nil
}

func (m mem) Put(k, v []byte) error {
	m[string(k)] = string(v)
	return nil
}

func (m mem) Delete(k []byte) error {
	delete(m, string(k))
	return nil
}

func (m mem) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func TestBucketGetter(t *testing.T) {
	m := mem{"k1": "v1", "k2": "v2"}

	tests := []struct {
		b     Bucket
		key   string
		want  string
		found bool
	}{
		{Bucket(""), "k1", "v1", true},
		{Bucket("k"), "1", "v1", true},
		{Bucket("k"), "k1", "", false},
		{Bucket("k1"), "", "v1", true},
	}
	for _, tt := range tests {
		g := tt.b.NewGetter(m)
		got, err := g.Get([]byte(tt.key))
		has, _ := g.Has([]byte(tt.key))
		assert.Equal(t, tt.found, has)
		if tt.found {
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		} else {
			assert.True(t, g.IsNotFound(err))
		}
	}
}

func TestBucketPutter(t *testing.T) {
	m := mem{}

	p := Bucket("acc").NewPutter(m)
	assert.NoError(t, p.Put([]byte("1"), []byte("v")))
	assert.Equal(t, "v", m["acc1"])

	assert.NoError(t, p.Delete([]byte("1")))
	assert.Empty(t, m)
}

func TestPrefixLimit(t *testing.T) {
	assert.Equal(t, []byte("b"), prefixLimit([]byte("a")))
	assert.Equal(t, []byte{0x01}, prefixLimit([]byte{0x00, 0xff}))
	assert.Nil(t, prefixLimit([]byte{0xff, 0xff}))
	assert.Equal(t, Range{Start: []byte("ab"), Limit: []byte("ac")}, Bucket("ab").Range())
}
