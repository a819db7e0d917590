//go:build !sqlite_fts5

package catalog

import (
	"database/sql"
	"fmt"

	"confsched/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses a case-sensitive substring test on the
	// abstract column, matching the core matcher's semantics.
	return nil
}

func ftsInsert(_ *sql.Tx, _ models.Proposal) error {
	// Abstract is already stored in the proposals table; nothing extra to do.
	return nil
}

func ftsClear(_ *sql.Tx) {}

// Search performs a substring search over abstracts (fallback when FTS5 is not
// compiled in). The empty term matches every proposal; results come back in
// feed order.
func (db *DB) Search(term string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id, title, substr(abstract, 1, 200)
		FROM proposals
		WHERE ? = '' OR instr(abstract, ?) > 0
		ORDER BY seq
		LIMIT ?
	`, term, term, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
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
