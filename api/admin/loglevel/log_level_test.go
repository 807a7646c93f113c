// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelHandler(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		body         any
		wantStatus   int
		wantLevel    string
		wantErrorMsg string
		wantLevelVar slog.Level
	}{
		{
			name:         "set level to debug",
			method:       http.MethodPost,
			body:         map[string]string{"level": "debug"},
			wantStatus:   http.StatusOK,
			wantLevel:    "DEBUG",
			wantLevelVar: slog.LevelDebug,
		},
		{
			name:         "invalid level",
			method:       http.MethodPost,
			body:         map[string]string{"level": "loud"},
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "invalid verbosity level: loud",
			wantLevelVar: slog.LevelInfo,
		},
		{
			name:         "get current level",
			method:       http.MethodGet,
			wantStatus:   http.StatusOK,
			wantLevel:    "INFO",
			wantLevelVar: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logLevel slog.LevelVar
			logLevel.Set(slog.LevelInfo)

			var body []byte
			if tt.body != nil {
				var err error
				body, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(tt.method, "/admin/loglevel", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			router := mux.NewRouter()
			New(&logLevel).Mount(router, "/admin/loglevel")
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantLevelVar, logLevel.Level())
			if tt.wantLevel != "" {
				var response Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
				assert.Equal(t, tt.wantLevel, response.CurrentLevel)
			} else {
				assert.Equal(t, tt.wantErrorMsg, strings.TrimSpace(rr.Body.String()))
			}
		})
	}
}
