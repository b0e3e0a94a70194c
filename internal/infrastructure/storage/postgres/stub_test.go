package postgres

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubCall struct {
	sql  string
	args []any
}

// stubDB answers statements with canned results and records each one
// with its whitespace normalized.
type stubDB struct {
	calls []stubCall

	execTag  pgconn.CommandTag
	execErr  error
	rows     [][]any
	queryErr error
	row      []any
	rowErr   error

	beginErr error
	batchErr map[int]error
	tx       *stubTx
}

func (s *stubDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.record(sql, args)
	return s.execTag, s.execErr
}

func (s *stubDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.record(sql, args)
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return &stubRows{rows: s.rows}, nil
}

// QueryRow reports pgx.ErrNoRows when no row is set.
func (s *stubDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.record(sql, args)
	switch {
	case s.rowErr != nil:
		return stubRow{err: s.rowErr}
	case s.row == nil:
		return stubRow{err: pgx.ErrNoRows}
	}
	return stubRow{vals: s.row}
}

func (s *stubDB) Begin(context.Context) (pgx.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.tx = &stubTx{db: s}
	return s.tx, nil
}

func (s *stubDB) record(sql string, args []any) {
	s.calls = append(s.calls, stubCall{sql: strings.Join(strings.Fields(sql), " "), args: args})
}

func (s *stubDB) statements() []string {
	out := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		out = append(out, c.sql)
	}
	return out
}

type stubTx struct {
	pgx.Tx
	db         *stubDB
	committed  bool
	rolledBack bool
}

func (t *stubTx) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	return &stubBatch{db: t.db, queued: b.QueuedQueries}
}

func (t *stubTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type stubBatch struct {
	pgx.BatchResults
	db     *stubDB
	queued []*pgx.QueuedQuery
	next   int
}

func (b *stubBatch) Exec() (pgconn.CommandTag, error) {
	if b.next >= len(b.queued) {
		return pgconn.CommandTag{}, fmt.Errorf("batch: no statement %d", b.next)
	}
	i, q := b.next, b.queued[b.next]
	b.next++
	b.db.record(q.SQL, q.Arguments)
	if err := b.db.batchErr[i]; err != nil {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (b *stubBatch) Close() error { return nil }

type stubRows struct {
	pgx.Rows
	rows [][]any
	cur  []any
	idx  int
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.cur = r.rows[r.idx]
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error { return scanValues(r.cur, dest) }
func (r *stubRows) Err() error             { return nil }
func (r *stubRows) Close()                 {}

type stubRow struct {
	vals []any
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanValues(r.vals, dest)
}

func scanValues(vals, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("scan: %d values into %d targets", len(vals), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		v := reflect.ValueOf(vals[i])
		if !v.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan: column %d is %s, target is %s", i, v.Type(), target.Type())
		}
		target.Set(v)
	}
	return nil
}
