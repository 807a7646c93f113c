// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakepoints/api/accounts"
	"github.com/vechain/stakepoints/api/custody"
	"github.com/vechain/stakepoints/api/escrows"
	"github.com/vechain/stakepoints/api/logs"
	"github.com/vechain/stakepoints/api/middleware"
	"github.com/vechain/stakepoints/api/subscriptions"
	"github.com/vechain/stakepoints/api/treasury"
	"github.com/vechain/stakepoints/auth"
	"github.com/vechain/stakepoints/log"
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	PprofOn              bool
	EnableMetrics        bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	LogsLimit            uint64
}

// New return api router
func New(
	rt *runtime.Runtime,
	logDB *logdb.LogDB,
	verifier *auth.Verifier,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(rt).
		Mount(router, "/accounts")
	escrows.New(rt).
		Mount(router, "/escrows")
	treasury.New(rt).
		Mount(router, "/treasury")
	custody.New(rt).
		Mount(router, "/custody")
	logs.New(logDB, opts.LogsLimit).
		Mount(router, "/logs")
	subs := subscriptions.New(rt, origins)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	// the signature covers the raw body, verify before anything rewrites it
	var handler http.Handler = verifier.Middleware(router)
	handler = handlers.CompressHandler(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", auth.HeaderSignature, auth.HeaderTimestamp, middleware.HeaderRequestID}),
		handlers.ExposedHeaders([]string{middleware.HeaderRequestID}),
	)(handler)

	enableReqLogger := opts.EnableReqLogger
	if enableReqLogger == nil {
		enableReqLogger = &atomic.Bool{}
	}
	handler = middleware.RequestLoggerMiddleware(logger, enableReqLogger, opts.SlowQueriesThreshold, opts.Log5xxErrors)(handler)

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
