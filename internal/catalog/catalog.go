// Package catalog provides the SQLite-backed durable copy of the conference
// programme, with optional FTS5 full-text search over abstracts.
package catalog

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"confsched/internal/models"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS proposals (
	id         TEXT PRIMARY KEY,
	seq        INTEGER NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	abstract   TEXT NOT NULL DEFAULT '',
	presenters TEXT NOT NULL DEFAULT '[]',
	day        TEXT NOT NULL,
	session    TEXT NOT NULL,
	room       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_proposals_day ON proposals(day);
CREATE INDEX IF NOT EXISTS idx_proposals_seq ON proposals(seq);

CREATE TABLE IF NOT EXISTS feed_meta (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL
);
`

// Store defines the catalog operations. Consumers should depend on this
// interface rather than the concrete *DB type to facilitate testing.
type Store interface {
	ReplaceAll(proposals []models.Proposal) error
	All() ([]models.Proposal, error)
	Get(id string) (models.Proposal, error)
	ByDay(day models.Day) ([]models.Proposal, error)
	DayCounts() (map[models.Day]int, error)
	Search(term string, limit int) ([]SearchHit, error)
	FeedChecksum() (string, error)
	SetFeedChecksum(cs string) error
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

// DB wraps a sql.DB with catalog-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("catalog: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("catalog: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("catalog: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("catalog: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
