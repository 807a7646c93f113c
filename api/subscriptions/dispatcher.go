// Copyright (c) 2023 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"sync"

	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/runtime"
)

// dispatcher fans committed events out to websocket listeners.
type dispatcher struct {
	rt        *runtime.Runtime
	listeners map[chan []*logdb.Event]struct{}
	mu        sync.RWMutex
}

func newDispatcher(rt *runtime.Runtime) *dispatcher {
	return &dispatcher{
		rt:        rt,
		listeners: make(map[chan []*logdb.Event]struct{}),
	}
}

func (d *dispatcher) Subscribe(ch chan []*logdb.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[ch] = struct{}{}
}

func (d *dispatcher) Unsubscribe(ch chan []*logdb.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.listeners, ch)
}

func (d *dispatcher) DispatchLoop(done <-chan struct{}) {
	evCh := make(chan []*logdb.Event)
	sub := d.rt.SubscribeEvents(evCh)
	defer sub.Unsubscribe()

	for {
		select {
		case events := <-evCh:
			d.mu.RLock()
			func() {
				for lsn := range d.listeners {
					select {
					case lsn <- events:
					case <-done:
						return
					default: // slow listeners miss events, they can catch up from the journal
					}
				}
			}()
			d.mu.RUnlock()
		case <-sub.Err():
			return
		case <-done:
			return
		}
	}
}
