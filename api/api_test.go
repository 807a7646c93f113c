// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepoints/api/accounts"
	"github.com/vechain/stakepoints/api/custody"
	"github.com/vechain/stakepoints/api/escrows"
	"github.com/vechain/stakepoints/api/logs"
	"github.com/vechain/stakepoints/api/middleware"
	"github.com/vechain/stakepoints/api/treasury"
	"github.com/vechain/stakepoints/auth"
	"github.com/vechain/stakepoints/clock"
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/lvldb"
	"github.com/vechain/stakepoints/runtime"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

const (
	t0   = uint64(1_700_000_000)
	unit = types.UnitScale
	day  = types.SecondsPerDay
)

type testServer struct {
	*httptest.Server
	clock *clock.Manual
}

func newTestServer(t *testing.T) *testServer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store, err := storage.NewStore(db, 128)
	require.NoError(t, err)
	journal, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	clk := clock.NewManual(t0)
	rt := runtime.New(store, clk, journal, runtime.Options{Dev: true})
	t.Cleanup(rt.Close)

	var reqLogger atomic.Bool
	handler, closeAPI := New(rt, journal, auth.NewVerifier(clk, 30*time.Second), Options{
		AllowedOrigins:  "*",
		EnableReqLogger: &reqLogger,
		LogsLimit:       100,
	})
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		ts.Close()
		closeAPI()
	})
	return &testServer{ts, clk}
}

func newKey(t *testing.T) (*ecdsa.PrivateKey, types.Address) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, auth.KeyAddress(key)
}

// do sends a request, signed by key when it is not nil, and decodes a 200 response into out.
func (ts *testServer) do(t *testing.T, key *ecdsa.PrivateKey, method, path string, body any, out any) (int, string) {
	return ts.doAt(t, key, ts.clock.Now(), method, path, body, out)
}

// doAt signs with an explicit timestamp, so a request identical to an earlier
// one is not rejected as a replay.
func (ts *testServer) doAt(t *testing.T, key *ecdsa.PrivateKey, at uint64, method, path string, body any, out any) (int, string) {
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(data))
	require.NoError(t, err)
	if key != nil {
		require.NoError(t, auth.Sign(req, data, key, at))
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Header.Get(middleware.HeaderRequestID))

	if res.StatusCode == http.StatusOK && out != nil {
		require.NoError(t, json.Unmarshal(resBody, out))
	}
	return res.StatusCode, string(resBody)
}

func TestAccountsFlow(t *testing.T) {
	ts := newTestServer(t)
	key, owner := newKey(t)
	base := "/accounts/" + owner.String()

	var bal custody.Balance
	code, _ := ts.do(t, nil, http.MethodPost, "/custody/faucet", map[string]any{"holder": owner, "amount": "20000000000"}, &bal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 20*unit, bal.Balance)

	var acc accounts.Account
	code, _ = ts.do(t, key, http.MethodPost, "/accounts", nil, &acc)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, owner, acc.Owner)
	assert.Equal(t, types.StakeAccountAddress(owner), acc.Address)

	code, _ = ts.doAt(t, key, ts.clock.Now()-1, http.MethodPost, "/accounts", nil, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = ts.do(t, key, http.MethodPost, base+"/stake", map[string]any{"amount": "10000000000"}, &acc)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 10*unit, acc.StakedAmount)

	ts.clock.Advance(day)

	var state accounts.AccountState
	code, _ = ts.do(t, nil, http.MethodGet, base, nil, &state)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(10_000_000), state.PendingPoints)
	assert.Equal(t, 10*unit, state.VaultBalance)

	var claim accounts.ClaimResult
	code, _ = ts.do(t, key, http.MethodPost, base+"/claim", nil, &claim)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(10_000_000), claim.Claimed)
	assert.Zero(t, claim.Account.TotalPoints)

	code, _ = ts.do(t, nil, http.MethodGet, "/custody/"+owner.String()+"/"+types.PointsAsset.String(), nil, &bal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(10_000_000), bal.Balance)

	code, _ = ts.do(t, key, http.MethodPost, base+"/unstake", map[string]any{"amount": "0x2540be400"}, &acc)
	require.Equal(t, http.StatusOK, code)
	assert.Zero(t, acc.StakedAmount)

	var events []*logs.Event
	code, _ = ts.do(t, nil, http.MethodPost, "/logs", map[string]any{"account": owner}, &events)
	require.Equal(t, http.StatusOK, code)
	kinds := make([]logdb.Kind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []logdb.Kind{
		logdb.FaucetMinted,
		logdb.AccountCreated,
		logdb.Staked,
		logdb.PointsClaimed,
		logdb.Unstaked,
	}, kinds)
}

func TestAuthorization(t *testing.T) {
	ts := newTestServer(t)
	key, owner := newKey(t)
	other, _ := newKey(t)
	base := "/accounts/" + owner.String()

	code, _ := ts.do(t, nil, http.MethodPost, "/accounts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code, "unsigned write")

	code, _ = ts.do(t, key, http.MethodPost, "/accounts", nil, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = ts.do(t, other, http.MethodPost, base+"/points", nil, nil)
	assert.Equal(t, http.StatusForbidden, code, "foreign signer")

	code, _ = ts.do(t, key, http.MethodPost, base+"/points", nil, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = ts.do(t, key, http.MethodPost, base+"/points", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code, "replayed request")

	code, _ = ts.do(t, nil, http.MethodGet, "/accounts/"+types.BytesToAddress([]byte("nobody")).String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ts.do(t, nil, http.MethodGet, "/accounts/0xzz", nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// tampered body
	data := []byte(`{"amount":"1"}`)
	req, err := http.NewRequest(http.MethodPost, ts.URL+base+"/stake", bytes.NewReader([]byte(`{"amount":"2"}`)))
	require.NoError(t, err)
	require.NoError(t, auth.Sign(req, data, key, ts.clock.Now()))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "signature recovers another address")

	// stale timestamp
	req, err = http.NewRequest(http.MethodPost, ts.URL+base+"/points", nil)
	require.NoError(t, err)
	require.NoError(t, auth.Sign(req, nil, key, ts.clock.Now()-3600))
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestTreasuryAndConversion(t *testing.T) {
	ts := newTestServer(t)
	adminKey, admin := newKey(t)
	key, owner := newKey(t)
	base := "/accounts/" + owner.String()

	for _, holder := range []types.Address{admin, owner} {
		code, _ := ts.do(t, nil, http.MethodPost, "/custody/faucet", map[string]any{"holder": holder, "amount": "100000000000"}, nil)
		require.Equal(t, http.StatusOK, code)
	}

	var info treasury.Treasury
	code, _ := ts.do(t, adminKey, http.MethodPost, "/treasury", nil, &info)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, admin, info.Admin)

	code, _ = ts.do(t, key, http.MethodPost, "/treasury/fund", map[string]any{"amount": "1"}, nil)
	assert.Equal(t, http.StatusForbidden, code, "only the admin funds")

	code, _ = ts.do(t, adminKey, http.MethodPost, "/treasury/fund", map[string]any{"amount": "50000000000"}, &info)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 50*unit, info.Balance)

	code, _ = ts.do(t, key, http.MethodPost, "/accounts", nil, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = ts.do(t, key, http.MethodPost, base+"/stake", map[string]any{"amount": "10000000000"}, nil)
	require.Equal(t, http.StatusOK, code)
	ts.clock.Advance(day)
	code, _ = ts.do(t, key, http.MethodPost, base+"/points", nil, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = ts.do(t, adminKey, http.MethodPost, "/treasury/pause", nil, &info)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, info.Paused)
	code, _ = ts.doAt(t, key, ts.clock.Now()-1, http.MethodPost, base+"/convert", map[string]any{"amount": "10000000"}, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = ts.do(t, adminKey, http.MethodPost, "/treasury/resume", nil, &info)
	require.Equal(t, http.StatusOK, code)

	var conv accounts.ConvertResult
	code, _ = ts.do(t, key, http.MethodPost, base+"/convert", map[string]any{"amount": "10000000"}, &conv)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(10_000_000)*1_000_000_000/10_000_000_000, conv.Payout)
	assert.Zero(t, conv.Account.TotalPoints)

	code, _ = ts.do(t, nil, http.MethodGet, "/treasury", nil, &info)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, conv.Payout, info.TotalPaidOut)
}

func TestEscrowFlow(t *testing.T) {
	ts := newTestServer(t)
	initKey, initializer := newKey(t)
	recvKey, receiver := newKey(t)
	id := types.BytesToAddress([]byte("escrow-1"))

	code, _ := ts.do(t, nil, http.MethodPost, "/custody/faucet", map[string]any{"holder": initializer, "amount": "5"}, nil)
	require.Equal(t, http.StatusOK, code)

	var esc escrows.Escrow
	code, _ = ts.do(t, initKey, http.MethodPost, "/escrows", map[string]any{"id": id, "receiver": receiver, "amount": "5"}, &esc)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, types.NativeAsset, esc.Mint)
	assert.False(t, esc.Claimed)

	code, _ = ts.do(t, initKey, http.MethodPost, "/escrows/"+id.String()+"/claim", nil, nil)
	assert.Equal(t, http.StatusForbidden, code, "initializer cannot claim")

	code, _ = ts.do(t, recvKey, http.MethodPost, "/escrows/"+id.String()+"/claim", nil, &esc)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, esc.Claimed)
	require.NotNil(t, esc.ClaimedAt)
	assert.Equal(t, t0, *esc.ClaimedAt)

	code, _ = ts.doAt(t, recvKey, t0-1, http.MethodPost, "/escrows/"+id.String()+"/claim", nil, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = ts.do(t, nil, http.MethodGet, "/escrows/"+id.String(), nil, &esc)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, esc.Claimed)

	var bal custody.Balance
	code, _ = ts.do(t, nil, http.MethodGet, "/custody/"+receiver.String()+"/"+types.NativeAsset.String(), nil, &bal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(5), bal.Balance)
}

func TestLogsLimit(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, nil, http.MethodPost, "/logs", map[string]any{"options": map[string]any{"limit": 1000}}, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, body, "maximum allowed value of 100")

	code, _ = ts.do(t, nil, http.MethodPost, "/logs", map[string]any{"order": "sideways"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
