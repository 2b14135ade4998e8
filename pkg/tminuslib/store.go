package tminuslib

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const createCountdownsTable = `CREATE TABLE IF NOT EXISTS countdowns (
	hash       TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	target_at  INTEGER NOT NULL DEFAULT 0,
	cron_expr  TEXT NOT NULL DEFAULT '',
	date_added INTEGER NOT NULL,
	hidden     INTEGER NOT NULL DEFAULT 0
)`

// Store persists countdown items in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the countdown database at path and
// ensures the schema exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// modernc.org/sqlite serializes writes itself; a single connection
	// avoids SQLITE_BUSY on concurrent handler calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createCountdownsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Load reads every persisted countdown into an ItemsMap. Items share the
// given mutex, matching how the manager constructs new ones.
func (s *Store) Load(mu *sync.RWMutex) (ItemsMap, error) {
	rows, err := s.db.Query(
		`SELECT hash, name, target_at, cron_expr, date_added, hidden FROM countdowns`,
	)
	if err != nil {
		return nil, fmt.Errorf("load countdowns: %w", err)
	}
	defer rows.Close()

	items := make(ItemsMap)
	for rows.Next() {
		var (
			it      Item
			addedMs int64
			hidden  int
		)
		if err := rows.Scan(&it.Hash, &it.Name, &it.TargetAt, &it.CronExpr, &addedMs, &hidden); err != nil {
			return nil, fmt.Errorf("scan countdown: %w", err)
		}
		it.DateAdded = time.UnixMilli(addedMs)
		it.Hidden = hidden != 0
		it.mu = mu
		items[it.Hash] = &it
	}
	return items, rows.Err()
}

// Put inserts or replaces an item.
func (s *Store) Put(item *Item) error {
	hidden := 0
	if item.Hidden {
		hidden = 1
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO countdowns
		 (hash, name, target_at, cron_expr, date_added, hidden)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.Hash, item.Name, item.TargetAt, item.CronExpr,
		item.DateAdded.UnixMilli(), hidden,
	)
	if err != nil {
		return fmt.Errorf("put countdown %s: %w", item.Hash, err)
	}
	return nil
}

// Delete removes an item by hash. Deleting a missing hash is a no-op.
func (s *Store) Delete(hash string) error {
	if _, err := s.db.Exec(`DELETE FROM countdowns WHERE hash = ?`, hash); err != nil {
		return fmt.Errorf("delete countdown %s: %w", hash, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
