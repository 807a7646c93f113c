// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepoints/api/accounts"
	"github.com/vechain/stakepoints/api/subscriptions"
	"github.com/vechain/stakepoints/clock"
	"github.com/vechain/stakepoints/lvldb"
	"github.com/vechain/stakepoints/metrics"
	"github.com/vechain/stakepoints/runtime"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func newMetricsRuntime(t *testing.T) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store, err := storage.NewStore(db, 0)
	require.NoError(t, err)
	rt := runtime.New(store, clock.NewManual(t0), nil, runtime.Options{})
	t.Cleanup(rt.Close)
	return rt
}

func scrape(t *testing.T, baseURL string) map[string]*dto.MetricFamily {
	body, _ := httpGet(t, baseURL+"/metrics")
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)
	return families
}

func labelsOf(m *dto.Metric) map[string]string {
	labels := make(map[string]string)
	for _, l := range m.GetLabel() {
		labels[l.GetName()] = l.GetValue()
	}
	return labels
}

func TestMetricsMiddleware(t *testing.T) {
	rt := newMetricsRuntime(t)

	router := mux.NewRouter()
	accounts.New(rt).Mount(router, "/accounts")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	defer ts.Close()

	httpGet(t, ts.URL+"/accounts/0x")
	httpGet(t, ts.URL+"/accounts/"+types.Address{}.String())
	_, code := httpGet(t, ts.URL+"/accounts/"+types.Address{}.String())
	assert.Equal(t, http.StatusNotFound, code)
	// unnamed routes are not recorded
	httpGet(t, ts.URL+"/unknown")

	families := scrape(t, ts.URL)
	m := families["stakepoints_api_request_count"].GetMetric()
	require.Len(t, m, 2, "should be 2 metric entries")

	counts := make(map[string]float64)
	for _, metric := range m {
		labels := labelsOf(metric)
		assert.Equal(t, "accounts_get_account", labels["name"])
		assert.Equal(t, http.MethodGet, labels["method"])
		counts[labels["code"]] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"400": 1, "404": 2}, counts)

	require.Contains(t, families, "stakepoints_api_duration_ms")
}

func TestWebsocketMetrics(t *testing.T) {
	rt := newMetricsRuntime(t)

	router := mux.NewRouter()
	sub := subscriptions.New(rt, []string{"*"})
	sub.Mount(router, "/subscriptions")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	defer func() {
		sub.Close()
		ts.Close()
	}()

	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/events"}
	activeCount := func() float64 {
		m := scrape(t, ts.URL)["stakepoints_api_active_websocket_count"].GetMetric()
		require.Len(t, m, 1, "should be 1 metric entry")
		assert.Equal(t, "events", labelsOf(m[0])["subject"])
		return m[0].GetGauge().GetValue()
	}

	conn1, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn1.Close()
	assert.Equal(t, float64(1), activeCount())

	conn2, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn2.Close()
	assert.Equal(t, float64(2), activeCount())

	conn2.Close()
	assert.Eventually(t, func() bool { return activeCount() == 1 }, time.Second, 10*time.Millisecond)
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	if err != nil {
		t.Fatal(err)
	}
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}
