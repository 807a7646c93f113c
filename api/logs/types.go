// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/types"
)

// Event for marshal journaled event
type Event struct {
	Seq     uint64         `json:"seq"`
	Time    uint64         `json:"time"`
	Kind    logdb.Kind     `json:"kind"`
	Account types.Address  `json:"account"`
	Caller  *types.Address `json:"caller,omitempty"`
	Asset   *types.Address `json:"asset,omitempty"`
	Amount  uint64         `json:"amount"`
	Points  uint64         `json:"points"`
}

func optionalAddress(addr types.Address) *types.Address {
	if addr.IsZero() {
		return nil
	}
	return &addr
}

// ConvertEvent converts a journal event into its json form.
func ConvertEvent(ev *logdb.Event) *Event {
	return &Event{
		Seq:     ev.Seq,
		Time:    ev.Time,
		Kind:    ev.Kind,
		Account: ev.Account,
		Caller:  optionalAddress(ev.Caller),
		Asset:   optionalAddress(ev.Asset),
		Amount:  ev.Amount,
		Points:  ev.Points,
	}
}

type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// EventFilter is the body of a journal query.
type EventFilter struct {
	Account *types.Address `json:"account"`
	Kinds   []logdb.Kind   `json:"kinds"`
	Range   *Range         `json:"range"`
	Options *Options       `json:"options"`
	Order   logdb.Order    `json:"order"`
}

func convertEventFilter(filter *EventFilter) *logdb.EventFilter {
	f := &logdb.EventFilter{
		Account: filter.Account,
		Kinds:   filter.Kinds,
		Order:   filter.Order,
	}
	if filter.Range != nil {
		f.Range = &logdb.Range{From: filter.Range.From, To: filter.Range.To}
	}
	if filter.Options != nil {
		f.Options = &logdb.Options{Offset: filter.Options.Offset, Limit: filter.Options.Limit}
	}
	return f
}
