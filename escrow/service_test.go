// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepoints/custody"
	"github.com/vechain/stakepoints/lvldb"
	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

var (
	initializer = types.BytesToAddress([]byte("initializer"))
	receiver    = types.BytesToAddress([]byte("receiver"))
	id          = types.BytesToAddress([]byte("escrow-1"))
	mint        = types.BytesToAddress([]byte("usdc"))
)

func newService(t *testing.T) (*Service, *custody.Custody) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stage := storage.NewStage(db)
	c := custody.New(stage)
	require.NoError(t, c.Mint(initializer, mint, 1000))
	return New(stage, c), c
}

func balance(t *testing.T, c *custody.Custody, holder types.Address) uint64 {
	bal, err := c.Balance(holder, mint)
	require.NoError(t, err)
	return bal
}

func TestEscrowClaimOnce(t *testing.T) {
	s, c := newService(t)

	e, err := s.Initialize(initializer, id, receiver, mint, 400)
	require.NoError(t, err)
	assert.Equal(t, Escrow{initializer, receiver, mint, 400}, *e)
	assert.Equal(t, uint64(400), balance(t, c, Vault(id)))
	assert.Equal(t, uint64(600), balance(t, c, initializer))

	// the initializer cannot take it back
	_, err = s.Claim(initializer, id, 10)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	settled, err := s.Claim(receiver, id, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), settled.ClaimedAt)
	assert.Equal(t, uint64(400), balance(t, c, receiver))
	assert.Zero(t, balance(t, c, Vault(id)))

	_, err = s.Claim(receiver, id, 11)
	assert.ErrorIs(t, err, reverts.ErrAlreadyClaimed)
	assert.Equal(t, uint64(400), balance(t, c, receiver))

	_, got, err := s.Get(id)
	assert.ErrorIs(t, err, reverts.ErrAlreadyClaimed)
	assert.Equal(t, *settled, *got)
}

func TestEscrowIdentityNotReusable(t *testing.T) {
	s, _ := newService(t)

	_, err := s.Initialize(initializer, id, receiver, mint, 1)
	require.NoError(t, err)
	_, err = s.Initialize(initializer, id, receiver, mint, 1)
	assert.ErrorIs(t, err, reverts.ErrAlreadyExists)

	_, err = s.Claim(receiver, id, 1)
	require.NoError(t, err)
	_, err = s.Initialize(initializer, id, receiver, mint, 1)
	assert.ErrorIs(t, err, reverts.ErrAlreadyExists)
}

func TestEscrowInvalid(t *testing.T) {
	s, c := newService(t)

	_, err := s.Initialize(initializer, id, receiver, mint, 0)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

	_, err = s.Initialize(initializer, id, receiver, mint, 1001)
	assert.ErrorIs(t, err, reverts.ErrTransferFailed)
	assert.Equal(t, uint64(1000), balance(t, c, initializer))

	_, err = s.Claim(receiver, id, 1)
	assert.ErrorIs(t, err, reverts.ErrNotFound)
}
