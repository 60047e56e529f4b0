// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Conn is a database handle that accepts "?" placeholders on every
// dialect and rewrites them to $n for Postgres.
type Conn struct {
	*sql.DB
	Dialect string
}

// Open connects using the driver for dialect and verifies the connection.
func Open(dialect, url string) (*Conn, error) {
	if dialect != DialectSQLite && dialect != DialectPostgres {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	sqlDB, err := sql.Open(dialect, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to :memory: would be its own empty database
	if dialect == DialectSQLite && strings.Contains(url, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Conn{DB: sqlDB, Dialect: dialect}, nil
}

// Rebind rewrites "?" placeholders for the connection's dialect.
func (c *Conn) Rebind(query string) string {
	return Rebind(c.Dialect, query)
}

func (c *Conn) Exec(query string, args ...any) (sql.Result, error) {
	return c.DB.Exec(c.Rebind(query), args...)
}

func (c *Conn) Query(query string, args ...any) (*sql.Rows, error) {
	return c.DB.Query(c.Rebind(query), args...)
}

func (c *Conn) QueryRow(query string, args ...any) *sql.Row {
	return c.DB.QueryRow(c.Rebind(query), args...)
}

// Tx is a transaction with the same placeholder rewriting as Conn.
type Tx struct {
	*sql.Tx
	dialect string
}

func (c *Conn) Begin() (*Tx, error) {
	tx, err := c.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: c.Dialect}, nil
}

func (t *Tx) Exec(query string, args ...any) (sql.Result, error) {
	return t.Tx.Exec(Rebind(t.dialect, query), args...)
}

func (t *Tx) QueryRow(query string, args ...any) *sql.Row {
	return t.Tx.QueryRow(Rebind(t.dialect, query), args...)
}

// Rebind replaces each "?" outside quoted literals with $1, $2, ... when
// dialect is Postgres. Other dialects get the query back unchanged.
func Rebind(dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
