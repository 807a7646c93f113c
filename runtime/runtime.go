// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/clock"
	"github.com/vechain/stakepoints/co"
	"github.com/vechain/stakepoints/custody"
	"github.com/vechain/stakepoints/escrow"
	"github.com/vechain/stakepoints/health"
	"github.com/vechain/stakepoints/log"
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/staker"
	"github.com/vechain/stakepoints/storage"
	"github.com/vechain/stakepoints/types"
)

var logger = log.WithContext("pkg", "runtime")

// committed batches waiting to be broadcast
const broadcastQueueSize = 1024

// ErrFaucetDisabled is returned by Faucet outside dev mode.
var ErrFaucetDisabled = errors.New("faucet disabled")

// Journal persists committed events.
type Journal interface {
	Write(events []*logdb.Event) error
}

// Options options for the runtime.
type Options struct {
	// Dev enables the faucet.
	Dev bool
	// Health, when set, is told about every commit.
	Health *health.Health
}

// Runtime executes ledger operations. Every write runs against its own stage which
// is committed as one batch, or dropped as a whole when the operation fails.
type Runtime struct {
	store   *storage.Store
	clock   clock.Clock
	journal Journal
	opts    Options
	locks   *keyedLocks
	// orders commits with their journal writes and broadcasts
	commitMu sync.Mutex

	feed      event.Feed
	scope     event.SubscriptionScope
	pending   chan []*logdb.Event
	done      chan struct{}
	closeOnce sync.Once
	goes      co.Goes
}

// New create a new runtime. journal may be nil.
func New(store *storage.Store, clock clock.Clock, journal Journal, opts Options) *Runtime {
	r := &Runtime{
		store:   store,
		clock:   clock,
		journal: journal,
		opts:    opts,
		locks:   newKeyedLocks(),
		pending: make(chan []*logdb.Event, broadcastQueueSize),
		done:    make(chan struct{}),
	}
	r.goes.Go(r.broadcastLoop)
	return r
}

// Close unsubscribes all listeners and stops broadcasting.
func (r *Runtime) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.scope.Close()
		r.goes.Wait()
	})
}

// broadcastLoop sends committed batches to subscribers one at a time, in commit order.
func (r *Runtime) broadcastLoop() {
	for {
		select {
		case events := <-r.pending:
			r.feed.Send(events)
		case <-r.done:
			return
		}
	}
}

// SubscribeEvents receives the events of every committed operation.
func (r *Runtime) SubscribeEvents(ch chan []*logdb.Event) event.Subscription {
	return r.scope.Track(r.feed.Subscribe(ch))
}

// Now returns the current time of the runtime clock.
func (r *Runtime) Now() uint64 {
	return r.clock.Now()
}

// Dev reports whether the faucet is enabled.
func (r *Runtime) Dev() bool {
	return r.opts.Dev
}

// env is the view of one operation.
type env struct {
	now     uint64
	stage   *storage.Stage
	custody *custody.Custody
	staker  *staker.Staker
	escrow  *escrow.Service

	events          []*logdb.Event
	treasuryTouched bool
}

func (r *Runtime) newEnv() *env {
	stage := r.store.NewStage()
	cust := custody.New(stage)
	return &env{
		now:     r.clock.Now(),
		stage:   stage,
		custody: cust,
		staker:  staker.New(stage, cust),
		escrow:  escrow.New(stage, cust),
	}
}

func (e *env) emit(kind logdb.Kind, account, caller, asset types.Address, amount, points uint64) {
	e.events = append(e.events, &logdb.Event{
		Time:    e.now,
		Kind:    kind,
		Account: account,
		Caller:  caller,
		Asset:   asset,
		Amount:  amount,
		Points:  points,
	})
}

// view runs fn under the resource locks. Nothing fn writes is kept.
func (r *Runtime) view(resources []types.Address, fn func(*env) error) error {
	unlock := r.locks.Lock(resources...)
	defer unlock()

	return fn(r.newEnv())
}

// exec runs fn under the resource locks and commits its writes when it succeeds.
func (r *Runtime) exec(op string, resources []types.Address, fn func(*env) error) (err error) {
	start := time.Now()
	defer func() {
		staker.RecordOp(op, err)
		metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	}()

	unlock := r.locks.Lock(resources...)
	defer unlock()

	e := r.newEnv()
	if err := fn(e); err != nil {
		logger.Debug("operation reverted", "op", op, "err", err)
		return err
	}
	r.commitMu.Lock()
	defer r.commitMu.Unlock()
	if err := r.store.Commit(e.stage); err != nil {
		logger.Error("failed to commit", "op", op, "err", err)
		return errors.Wrapf(err, "commit %v", op)
	}
	r.afterCommit(e)
	return nil
}

func (r *Runtime) afterCommit(e *env) {
	if e.treasuryTouched {
		if info, err := e.staker.Treasury().Info(); err == nil {
			metricTreasuryBalance().Set(int64(min(info.Balance, math.MaxInt64)))
		}
	}
	if len(e.events) == 0 {
		return
	}
	var journalErr error
	if r.journal != nil {
		// the ledger is already committed, a journal failure only loses history
		if journalErr = r.journal.Write(e.events); journalErr != nil {
			logger.Warn("failed to journal events", "count", len(e.events), "err", journalErr)
		}
	}
	if r.opts.Health != nil {
		r.opts.Health.Committed(time.Now(), journalErr)
	}
	// a full queue holds back commits until subscribers catch up
	select {
	case r.pending <- e.events:
	case <-r.done:
	}
}

func authenticated(caller types.Address) error {
	if caller.IsZero() {
		return reverts.ErrUnauthorized
	}
	return nil
}

// accountResources are the locks of an account operation. The stake vault is
// included so balance reads of the vault wait for the operation.
func accountResources(owner types.Address, extra ...types.Address) []types.Address {
	return append([]types.Address{types.StakeAccountAddress(owner), types.StakeVaultAddress(owner), owner}, extra...)
}

// escrowResources are the locks of an escrow operation, vault included.
func escrowResources(id types.Address, extra ...types.Address) []types.Address {
	return append([]types.Address{id, escrow.Vault(id)}, extra...)
}
