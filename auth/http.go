// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auth

import (
	"bytes"
	"crypto/ecdsa"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/stakepoints/clock"
	"github.com/vechain/stakepoints/types"
)

const (
	maxBodySize = 1 << 20
	// verified requests remembered for replay detection
	replayCacheSize = 1 << 16
)

// Sign signs req, whose body is body, on behalf of key at timestamp.
func Sign(req *http.Request, body []byte, key *ecdsa.PrivateKey, timestamp uint64) error {
	hash := SigningHash(req.Method, req.URL.RequestURI(), body, timestamp)
	sig, err := SignHash(hash, key)
	if err != nil {
		return err
	}
	req.Header.Set(HeaderSignature, sig)
	req.Header.Set(HeaderTimestamp, strconv.FormatUint(timestamp, 10))
	return nil
}

// Verifier authenticates signed requests. A request is accepted once: the same
// principal signing the same request at the same timestamp is a replay.
type Verifier struct {
	clock  clock.Clock
	window uint64

	mu   sync.Mutex
	seen *lru.Cache // seenKey => expiry
	// highest expiry among entries evicted before they expired
	evictedUntil uint64
}

type seenKey struct {
	hash      types.Bytes32
	principal types.Address
}

func NewVerifier(clock clock.Clock, window time.Duration) *Verifier {
	v := &Verifier{clock: clock, window: uint64(window / time.Second)}
	v.seen, _ = lru.NewWithEvict(replayCacheSize, v.onEvicted)
	return v
}

func (v *Verifier) onEvicted(_, value any) {
	if expiry := value.(uint64); expiry >= v.clock.Now() && expiry > v.evictedUntil {
		v.evictedUntil = expiry
	}
}

// remember records a verified request, failing if it was seen before.
func (v *Verifier) remember(hash types.Bytes32, principal types.Address, ts uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	expiry := ts + v.window
	// the request may have been forgotten under pressure, so it can't be told from a replay
	if expiry <= v.evictedUntil {
		return ErrStaleRequest
	}
	if seen, _ := v.seen.ContainsOrAdd(seenKey{hash, principal}, expiry); seen {
		return ErrReplayedRequest
	}
	return nil
}

// Verify returns the principal of req. The body is read and restored.
// A request verifies at most once within the window.
func (v *Verifier) Verify(req *http.Request) (types.Address, error) {
	sig := req.Header.Get(HeaderSignature)
	if sig == "" {
		return types.Address{}, ErrMissingSignature
	}
	ts, err := strconv.ParseUint(req.Header.Get(HeaderTimestamp), 10, 64)
	if err != nil {
		return types.Address{}, ErrStaleRequest
	}
	now := v.clock.Now()
	if ts+v.window < now || ts > now+v.window {
		return types.Address{}, ErrStaleRequest
	}

	var body []byte
	if req.Body != nil {
		if body, err = io.ReadAll(io.LimitReader(req.Body, maxBodySize)); err != nil {
			return types.Address{}, err
		}
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	hash := SigningHash(req.Method, req.URL.RequestURI(), body, ts)
	principal, err := Recover(hash, sig)
	if err != nil {
		return types.Address{}, err
	}
	if err := v.remember(hash, principal, ts); err != nil {
		return types.Address{}, err
	}
	return principal, nil
}

// Middleware attaches the principal of signed requests to the request context.
// Unsigned requests pass through anonymous, bad or replayed signatures are rejected.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderSignature) == "" {
			next.ServeHTTP(w, r)
			return
		}
		principal, err := v.Verify(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}
