// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

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
	admin    = types.BytesToAddress([]byte("admin"))
	stranger = types.BytesToAddress([]byte("stranger"))
	user     = types.BytesToAddress([]byte("user"))
)

func newService(t *testing.T) (*Service, *custody.Custody) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stage := storage.NewStage(db)
	c := custody.New(stage)
	require.NoError(t, c.Mint(admin, types.NativeAsset, 100*types.UnitScale))
	return New(stage, c), c
}

func TestTreasuryLifecycle(t *testing.T) {
	s, c := newService(t)

	_, err := s.Info()
	assert.ErrorIs(t, err, reverts.ErrNotFound)
	assert.ErrorIs(t, s.Fund(admin, 1), reverts.ErrNotFound)

	require.NoError(t, s.Initialize(admin))
	assert.ErrorIs(t, s.Initialize(stranger), reverts.ErrAlreadyExists)

	assert.ErrorIs(t, s.Fund(admin, 0), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, s.Fund(stranger, 10), reverts.ErrUnauthorized)
	require.NoError(t, s.Fund(admin, 30*types.UnitScale))

	info, err := s.Info()
	require.NoError(t, err)
	assert.Equal(t, admin, info.Admin)
	assert.Equal(t, 30*types.UnitScale, info.Balance)
	assert.Equal(t, 30*types.UnitScale, info.TotalFunded)
	assert.Equal(t, types.TreasuryAddress(), info.Address)

	require.NoError(t, s.Payout(user, 6*types.UnitScale))
	bal, err := c.Balance(user, types.NativeAsset)
	require.NoError(t, err)
	assert.Equal(t, 6*types.UnitScale, bal)

	info, err = s.Info()
	require.NoError(t, err)
	assert.Equal(t, 24*types.UnitScale, info.Balance)
	assert.Equal(t, 6*types.UnitScale, info.TotalPaidOut)

	assert.ErrorIs(t, s.Payout(user, 25*types.UnitScale), reverts.ErrInsufficientTreasury)
}

func TestTreasuryPause(t *testing.T) {
	s, _ := newService(t)
	require.NoError(t, s.Initialize(admin))
	require.NoError(t, s.Fund(admin, types.UnitScale))

	assert.ErrorIs(t, s.SetPaused(stranger, true), reverts.ErrUnauthorized)
	require.NoError(t, s.SetPaused(admin, true))
	assert.ErrorIs(t, s.CheckOpen(), reverts.ErrConversionsPaused)
	assert.ErrorIs(t, s.Payout(user, 1), reverts.ErrConversionsPaused)

	require.NoError(t, s.SetPaused(admin, false))
	assert.NoError(t, s.CheckOpen())
	assert.NoError(t, s.Payout(user, 1))
}
