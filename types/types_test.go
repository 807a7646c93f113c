// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", ""},
		{"7567d83b7b8d80addcb281a71d54fc7b3364ffed", ""},
		{"1x7567d83b7b8d80addcb281a71d54fc7b3364ffed", "invalid prefix"},
		{"0x7567d83b", "invalid length"},
	}
	for _, tt := range tests {
		addr, err := ParseAddress(tt.in)
		if tt.wantErr != "" {
			assert.EqualError(t, err, tt.wantErr, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())
	}
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("owner"))

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"0x01"`), &decoded))
}

func TestBytes32JSON(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var b Bytes32
	require.NoError(t, json.Unmarshal([]byte(originalHex), &b))

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, originalHex, string(data))

	data, err = json.Marshal(&b)
	require.NoError(t, err)
	assert.Equal(t, originalHex, string(data))
}

func TestDeriveAddress(t *testing.T) {
	owner := BytesToAddress([]byte("owner"))
	other := BytesToAddress([]byte("other"))

	assert.Equal(t, StakeAccountAddress(owner), StakeAccountAddress(owner))
	assert.NotEqual(t, StakeAccountAddress(owner), StakeAccountAddress(other))
	assert.NotEqual(t, StakeAccountAddress(owner), StakeVaultAddress(owner))
	assert.NotEqual(t, StakeAccountAddress(owner), EscrowVaultAddress(owner))

	// parts are length prefixed
	assert.NotEqual(t,
		DeriveAddress("s", []byte("ab"), []byte("c")),
		DeriveAddress("s", []byte("a"), []byte("bc")),
	)
	assert.False(t, TreasuryAddress().IsZero())
}

func TestHashes(t *testing.T) {
	assert.Equal(t, Blake2b([]byte("foobar")), Blake2b([]byte("foo"), []byte("bar")))
	assert.Equal(t,
		"0x38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e",
		Keccak256([]byte("foobar")).String(),
	)
	assert.Equal(t, Keccak256([]byte("foobar")), Keccak256([]byte("foo"), []byte("bar")))
}
