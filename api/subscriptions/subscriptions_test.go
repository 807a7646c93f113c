// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepoints/api/logs"
	"github.com/vechain/stakepoints/clock"
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/lvldb"
	"github.com/vechain/stakepoints/runtime"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

var (
	alice = types.BytesToAddress([]byte("alice"))
	bob   = types.BytesToAddress([]byte("bob"))
)

func newTestSubscriptions(t *testing.T) (*runtime.Runtime, *Subscriptions, *httptest.Server) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store, err := storage.NewStore(db, 0)
	require.NoError(t, err)

	rt := runtime.New(store, clock.NewManual(1_700_000_000), nil, runtime.Options{Dev: true})
	subs := New(rt, []string{"https://stake.example"})
	router := mux.NewRouter()
	subs.Mount(router, "/subscriptions")
	ts := httptest.NewServer(router)
	t.Cleanup(func() {
		subs.Close()
		ts.Close()
		rt.Close()
	})
	return rt, subs, ts
}

func (s *Subscriptions) listenerCount() int {
	s.dispatcher.mu.RLock()
	defer s.dispatcher.mu.RUnlock()
	return len(s.dispatcher.listeners)
}

func dial(t *testing.T, ts *httptest.Server, query string, header http.Header) (*websocket.Conn, *http.Response, error) {
	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/events", RawQuery: query}
	return websocket.DefaultDialer.Dial(u.String(), header)
}

func TestSubscribeEvents(t *testing.T) {
	rt, subs, ts := newTestSubscriptions(t)

	all, _, err := dial(t, ts, "", nil)
	require.NoError(t, err)
	defer all.Close()
	onlyBob, _, err := dial(t, ts, "account="+bob.String(), nil)
	require.NoError(t, err)
	defer onlyBob.Close()
	assert.Eventually(t, func() bool { return subs.listenerCount() == 2 }, time.Second, time.Millisecond)

	require.NoError(t, rt.Faucet(alice, types.NativeAsset, 7))
	require.NoError(t, rt.Faucet(bob, types.NativeAsset, 9))

	all.SetReadDeadline(time.Now().Add(5 * time.Second))
	got := make(map[types.Address]uint64)
	for range 2 {
		var ev logs.Event
		require.NoError(t, all.ReadJSON(&ev))
		assert.Equal(t, logdb.FaucetMinted, ev.Kind)
		got[ev.Account] = ev.Amount
	}
	assert.Equal(t, map[types.Address]uint64{alice: 7, bob: 9}, got)

	onlyBob.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev logs.Event
	require.NoError(t, onlyBob.ReadJSON(&ev))
	assert.Equal(t, bob, ev.Account)
	assert.Equal(t, uint64(9), ev.Amount)
}

func TestSubscribeRejects(t *testing.T) {
	_, subs, ts := newTestSubscriptions(t)

	_, res, err := dial(t, ts, "account=0x01", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	_, res, err = dial(t, ts, "", http.Header{"Origin": []string{"https://evil.example"}})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	conn, _, err := dial(t, ts, "", http.Header{"Origin": []string{"https://stake.example"}})
	require.NoError(t, err)
	conn.Close()
	assert.Eventually(t, func() bool { return subs.listenerCount() == 0 }, time.Second, time.Millisecond)
}
