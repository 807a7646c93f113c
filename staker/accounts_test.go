// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepoints/custody"
	"github.com/vechain/stakepoints/lvldb"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

func TestAccountsListsCommitted(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	store, err := storage.NewStore(db, 16)
	require.NoError(t, err)

	stage := store.NewStage()
	c := custody.New(stage)
	s := New(stage, c)
	require.NoError(t, c.Mint(owner, types.NativeAsset, 5))
	_, err = s.CreateAccount(owner, t0)
	require.NoError(t, err)
	_, err = s.Stake(owner, owner, 5, t0)
	require.NoError(t, err)

	accounts, err := Accounts(db)
	require.NoError(t, err)
	assert.Empty(t, accounts, "staged changes are not listed")

	require.NoError(t, store.Commit(stage))

	accounts, err = Accounts(db)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, Account{Owner: owner, StakedAmount: 5, LastUpdateTime: t0}, accounts[0])
}
