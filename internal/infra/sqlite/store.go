// Package sqlite persists the application state: catalog, technician
// roster, customer ledger, discount policies and orders.
//
// Compound lifecycle transitions (order creation, payment settlement) run
// as single transactions so inventory, debt and volume mutations commit
// atomically with the order write.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle and implements domain.Store.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies migrations.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc.org/sqlite serializes at the driver level; a single
	// connection avoids table-lock errors under the write-heavy tests.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}

	s := &DB{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying handle.
func (db *DB) Close() error { return db.db.Close() }

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema statements. Each string is a single SQL
// statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS batteries (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			brand    TEXT NOT NULL,
			capacity TEXT NOT NULL DEFAULT '',
			stock    INTEGER NOT NULL DEFAULT 0,
			price    INTEGER NOT NULL DEFAULT 0,
			vehicle  TEXT NOT NULL DEFAULT 'Car'
		)`,

		`CREATE TABLE IF NOT EXISTS technicians (
			id     TEXT PRIMARY KEY,
			name   TEXT NOT NULL,
			phone  TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Available'
		)`,

		`CREATE TABLE IF NOT EXISTS customers (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			type             TEXT NOT NULL DEFAULT 'retail',
			tier             TEXT NOT NULL DEFAULT 'Bronze',
			phone            TEXT NOT NULL DEFAULT '',
			total_debt       INTEGER NOT NULL DEFAULT 0,
			credit_limit     INTEGER NOT NULL DEFAULT 0,
			monthly_quantity INTEGER NOT NULL DEFAULT 0,
			last_order_at    TEXT NOT NULL DEFAULT '',
			debt_since       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name)`,

		// Replaced wholesale by the policy form; rowid preserves the
		// configured order so duplicate thresholds resolve stably.
		`CREATE TABLE IF NOT EXISTS discount_policies (
			min_quantity     INTEGER NOT NULL,
			discount_percent INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id              TEXT PRIMARY KEY,
			customer_id     TEXT NOT NULL DEFAULT '',
			customer_name   TEXT NOT NULL,
			address         TEXT NOT NULL DEFAULT '',
			battery_id      TEXT NOT NULL,
			quantity        INTEGER NOT NULL,
			technician_id   TEXT NOT NULL DEFAULT '',
			status          TEXT NOT NULL,
			total_amount    INTEGER NOT NULL DEFAULT 0,
			discount_amount INTEGER NOT NULL DEFAULT 0,
			paid_amount     INTEGER NOT NULL DEFAULT 0,
			created_at      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_technician ON orders(technician_id)`,
	}
}

func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// ─── Time Encoding ──────────────────────────────────────────────────────────
// Timestamps are stored as RFC 3339 text, the empty string meaning zero.

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil
	}
	return &t
}
