//go:build sqlite_fts5

package catalog

import (
	"database/sql"
	"fmt"

	"confsched/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS proposals_fts USING fts5(
			id UNINDEXED,
			title UNINDEXED,
			abstract,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsInsert(tx *sql.Tx, p models.Proposal) error {
	_, err := tx.Exec(`INSERT INTO proposals_fts (id, title, abstract) VALUES (?, ?, ?)`,
		p.ID, p.Title, p.Abstract)
	if err != nil {
		return fmt.Errorf("catalog: insert fts: %w", err)
	}
	return nil
}

func ftsClear(tx *sql.Tx) {
	_, _ = tx.Exec(`DELETE FROM proposals_fts`)
}

// Search performs an FTS5 full-text search over abstracts and returns matches
// with highlighted snippets. The empty term falls back to the full programme.
func (db *DB) Search(term string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 20
	}
	if term == "" {
		rows, err := db.conn.Query(`
			SELECT id, title, substr(abstract, 1, 200) FROM proposals ORDER BY seq LIMIT ?
		`, limit)
		if err != nil {
			return nil, fmt.Errorf("catalog: search: %w", err)
		}
		return collectHits(rows)
	}
	rows, err := db.conn.Query(`
		SELECT id,
		       title,
		       snippet(proposals_fts, 2, '<b>', '</b>', '...', 64)
		FROM proposals_fts
		WHERE proposals_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, term, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	return collectHits(rows)
}

func collectHits(rows *sql.Rows) ([]SearchHit, error) {
	defer rows.Close()
	var out []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.ID, &h.Title, &h.Snippet); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
