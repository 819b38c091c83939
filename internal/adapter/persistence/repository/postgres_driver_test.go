package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"testing"
)

// scriptedDB is a database/sql driver that answers each statement from the
// exec and query hooks and records what it was sent.
type scriptedDB struct {
	mu    sync.Mutex
	sent  []sentStatement
	exec  func(query string, args []any) (driver.Result, error)
	query func(query string, args []any) (columns []string, rows [][]driver.Value, err error)
}

type sentStatement struct {
	query string
	args  []any
}

func openScripted(t *testing.T, s *scriptedDB) *sql.DB {
	t.Helper()
	db := sql.OpenDB(scriptedConnector{s})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func (s *scriptedDB) record(query string, named []driver.NamedValue) []any {
	args := make([]any, len(named))
	for i, nv := range named {
		args[i] = nv.Value
	}
	s.mu.Lock()
	s.sent = append(s.sent, sentStatement{query: query, args: args})
	s.mu.Unlock()
	return args
}

func (s *scriptedDB) last() sentStatement {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return sentStatement{}
	}
	return s.sent[len(s.sent)-1]
}

type scriptedConnector struct{ db *scriptedDB }

func (c scriptedConnector) Connect(context.Context) (driver.Conn, error) {
	return &scriptedConn{db: c.db}, nil
}

func (c scriptedConnector) Driver() driver.Driver { return scriptedDriver{} }

type scriptedDriver struct{}

func (scriptedDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through sql.OpenDB")
}

type scriptedConn struct{ db *scriptedDB }

func (c *scriptedConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not scripted")
}

func (c *scriptedConn) Close() error { return nil }

func (c *scriptedConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions are not scripted")
}

func (c *scriptedConn) ExecContext(_ context.Context, query string, named []driver.NamedValue) (driver.Result, error) {
	args := c.db.record(query, named)
	if c.db.exec == nil {
		return driver.RowsAffected(1), nil
	}
	return c.db.exec(query, args)
}

func (c *scriptedConn) QueryContext(_ context.Context, query string, named []driver.NamedValue) (driver.Rows, error) {
	args := c.db.record(query, named)
	if c.db.query == nil {
		return &scriptedRows{}, nil
	}
	cols, data, err := c.db.query(query, args)
	if err != nil {
		return nil, err
	}
	return &scriptedRows{columns: cols, data: data}, nil
}

type scriptedRows struct {
	columns []string
	data    [][]driver.Value
	next    int
}

func (r *scriptedRows) Columns() []string { return r.columns }
func (r *scriptedRows) Close() error      { return nil }

func (r *scriptedRows) Next(dest []driver.Value) error {
	if r.next >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.next])
	r.next++
	return nil
}
