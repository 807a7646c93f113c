// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepoints/custody"
	"github.com/vechain/stakepoints/lvldb"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

type testEnv struct {
	staker  *Staker
	custody *custody.Custody
	stage   *storage.Stage
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stage := storage.NewStage(db)
	c := custody.New(stage)
	return &testEnv{staker: New(stage, c), custody: c, stage: stage}
}

func (e *testEnv) fund(t *testing.T, holder types.Address, amount uint64) {
	require.NoError(t, e.custody.Mint(holder, types.NativeAsset, amount))
}

func (e *testEnv) balance(t *testing.T, holder, asset types.Address) uint64 {
	bal, err := e.custody.Balance(holder, asset)
	require.NoError(t, err)
	return bal
}

type TestFunc func(t *testing.T)

// TestSequence runs staker operations in order against a moving clock.
type TestSequence struct {
	staker *Staker
	now    uint64

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(staker *Staker, start uint64) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), staker: staker, now: start}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) Wait(seconds uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.now += seconds
		t.Logf("clock moved to %d", st.now)
	})
}

func (st *TestSequence) Create(owner types.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if _, err := st.staker.CreateAccount(owner, st.now); err != nil {
			t.Fatalf("failed to create account %s: %v", owner, err)
		}
		t.Logf("created account %s", owner)
	})
}

func (st *TestSequence) Stake(owner types.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if _, err := st.staker.Stake(owner, owner, amount, st.now); err != nil {
			t.Fatalf("failed to stake %d for %s: %v", amount, owner, err)
		}
		t.Logf("staked %d for %s", amount, owner)
	})
}

func (st *TestSequence) Unstake(owner types.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if _, err := st.staker.Unstake(owner, owner, amount, st.now); err != nil {
			t.Fatalf("failed to unstake %d for %s: %v", amount, owner, err)
		}
		t.Logf("unstaked %d for %s", amount, owner)
	})
}

func (st *TestSequence) GetPoints(owner types.Address, expected uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		acc, err := st.staker.GetPoints(owner, owner, st.now)
		if err != nil {
			t.Fatalf("failed to get points of %s: %v", owner, err)
		}
		assert.Equal(t, expected, acc.TotalPoints, "points of %s", owner)
	})
}

func (st *TestSequence) Claim(owner types.Address, expected uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		_, claimed, err := st.staker.ClaimPoints(owner, owner, st.now)
		if err != nil {
			t.Fatalf("failed to claim points of %s: %v", owner, err)
		}
		assert.Equal(t, expected, claimed, "claimed points of %s", owner)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
}

type AccountAssertions struct {
	staker *Staker
	owner  types.Address

	staked *uint64
	points *uint64
}

func AssertAccount(staker *Staker, owner types.Address) *AccountAssertions {
	return &AccountAssertions{staker: staker, owner: owner}
}

func (aa *AccountAssertions) Staked(expected uint64) *AccountAssertions {
	aa.staked = &expected
	return aa
}

func (aa *AccountAssertions) Points(expected uint64) *AccountAssertions {
	aa.points = &expected
	return aa
}

func (aa *AccountAssertions) Assert(t *testing.T) {
	acc, err := aa.staker.Account(aa.owner)
	require.NoError(t, err, "failed to get account %s", aa.owner)

	if aa.staked != nil {
		assert.Equal(t, *aa.staked, acc.StakedAmount, "account %s staked mismatch", aa.owner)
	}
	if aa.points != nil {
		assert.Equal(t, *aa.points, acc.TotalPoints, "account %s points mismatch", aa.owner)
	}
	assert.Equal(t, aa.owner, acc.Owner)
}
