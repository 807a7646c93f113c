// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/types"
)

const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	time INTEGER NOT NULL,
	kind TEXT NOT NULL,
	account BLOB NOT NULL,
	caller BLOB NOT NULL,
	asset BLOB NOT NULL,
	amount INTEGER NOT NULL,
	points INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS eventAccountIndex ON event(account, seq);
CREATE INDEX IF NOT EXISTS eventTimeIndex ON event(time);
`

const insertEvent = "INSERT INTO event(time, kind, account, caller, asset, amount, points) VALUES (?, ?, ?, ?, ?, ?, ?)"

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if path == ":memory:" {
		// every connection opens its own in-memory database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmtCache:     newStmtCache(db),
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the linked sqlite library.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Write appends events in one transaction and assigns their sequence numbers.
func (db *LogDB) Write(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	stmt, err := db.stmtCache.Prepare(context.Background(), insertEvent)
	if err != nil {
		return err
	}
	return db.execInTx(func(tx *sql.Tx) error {
		txStmt := tx.Stmt(stmt)
		for _, ev := range events {
			res, err := txStmt.Exec(
				int64(ev.Time),
				string(ev.Kind),
				ev.Account.Bytes(),
				ev.Caller.Bytes(),
				ev.Asset.Bytes(),
				int64(ev.Amount), // stored as raw bits, never compared
				int64(ev.Points),
			)
			if err != nil {
				return errors.Wrap(err, "insert event")
			}
			seq, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ev.Seq = uint64(seq)
		}
		return nil
	})
}

func (db *LogDB) execInTx(proc func(*sql.Tx) error) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Filter returns the events matching filter. A nil filter returns everything in ascending order.
func (db *LogDB) Filter(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, time, kind, account, caller, asset, amount, points FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var (
		args []any
		stmt = query + " WHERE 1"
	)
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ?"
	}
	if len(filter.Kinds) > 0 {
		// deduplicated and sorted so equal kind sets share one statement
		kinds := slices.Clone(filter.Kinds)
		slices.Sort(kinds)
		kinds = slices.Compact(kinds)
		marks := make([]string, 0, len(kinds))
		for _, k := range kinds {
			marks = append(marks, "?")
			args = append(args, string(k))
		}
		stmt += " AND kind IN (" + strings.Join(marks, ",") + ")"
	}
	if filter.Range != nil {
		args = append(args, int64(filter.Range.From))
		stmt += " AND time >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, int64(filter.Range.To))
			stmt += " AND time <= ?"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, int64(filter.Options.Offset), int64(filter.Options.Limit))
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	prepared, err := db.stmtCache.Prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}
	rows, err := prepared.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     int64
			time    int64
			kind    string
			account []byte
			caller  []byte
			asset   []byte
			amount  int64
			points  int64
		)
		if err := rows.Scan(
			&seq,
			&time,
			&kind,
			&account,
			&caller,
			&asset,
			&amount,
			&points,
		); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			Seq:     uint64(seq),
			Time:    uint64(time),
			Kind:    Kind(kind),
			Account: types.BytesToAddress(account),
			Caller:  types.BytesToAddress(caller),
			Asset:   types.BytesToAddress(asset),
			Amount:  uint64(amount),
			Points:  uint64(points),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
