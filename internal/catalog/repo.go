package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"confsched/internal/apperr"
	"confsched/internal/models"
)

// SearchHit is one search result: the matched proposal's identity plus a
// snippet of its abstract.
type SearchHit struct {
	ID      string
	Title   string
	Snippet string
}

// ReplaceAll swaps the stored programme for the given collection in a single
// transaction. Feed order is preserved through the seq column.
func (db *DB) ReplaceAll(proposals []models.Proposal) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM proposals`); err != nil {
		return fmt.Errorf("catalog: clear proposals: %w", err)
	}
	ftsClear(tx)

	stmt, err := tx.Prepare(`
		INSERT INTO proposals (id, seq, title, abstract, presenters, day, session, room)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("catalog: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range proposals {
		presenters, _ := json.Marshal(p.Presenters)
		_, err := stmt.Exec(p.ID, i, p.Title, p.Abstract, string(presenters),
			p.Day.Token(), p.Session.Token(), p.Room.String())
		if err != nil {
			return fmt.Errorf("catalog: insert proposal %s: %w", p.ID, err)
		}
		if err := ftsInsert(tx, p); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// All returns the full programme in feed order.
func (db *DB) All() ([]models.Proposal, error) {
	return db.queryProposals(`
		SELECT id, title, abstract, presenters, day, session, room
		FROM proposals ORDER BY seq
	`)
}

// Get returns a single proposal by identifier, or apperr.ErrNotFound.
func (db *DB) Get(id string) (models.Proposal, error) {
	row := db.conn.QueryRow(`
		SELECT id, title, abstract, presenters, day, session, room
		FROM proposals WHERE id = ?
	`, id)
	p, err := scanProposal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Proposal{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Proposal{}, fmt.Errorf("catalog: get %s: %w", id, err)
	}
	return p, nil
}

// ByDay returns one day's proposals in feed order.
func (db *DB) ByDay(day models.Day) ([]models.Proposal, error) {
	return db.queryProposals(`
		SELECT id, title, abstract, presenters, day, session, room
		FROM proposals WHERE day = ? ORDER BY seq
	`, day.Token())
}

// DayCounts returns the number of proposals per day.
func (db *DB) DayCounts() (map[models.Day]int, error) {
	rows, err := db.conn.Query(`SELECT day, COUNT(*) FROM proposals GROUP BY day`)
	if err != nil {
		return nil, fmt.Errorf("catalog: day counts: %w", err)
	}
	defer rows.Close()

	out := make(map[models.Day]int)
	for rows.Next() {
		var token string
		var n int
		if err := rows.Scan(&token, &n); err != nil {
			return nil, err
		}
		if d, ok := models.ParseDay(token); ok {
			out[d] = n
		}
	}
	return out, rows.Err()
}

// FeedChecksum returns the checksum of the last synced feed payload, or empty
// string when no sync has happened yet.
func (db *DB) FeedChecksum() (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT v FROM feed_meta WHERE k = 'feed_checksum'`).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("catalog: feed checksum: %w", err)
	}
	return cs, nil
}

// SetFeedChecksum records the checksum of the synced feed payload.
func (db *DB) SetFeedChecksum(cs string) error {
	_, err := db.conn.Exec(`
		INSERT INTO feed_meta (k, v) VALUES ('feed_checksum', ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v
	`, cs)
	if err != nil {
		return fmt.Errorf("catalog: set feed checksum: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProposal(row rowScanner) (models.Proposal, error) {
	var p models.Proposal
	var presenters, dayTok, sessTok, roomName string
	if err := row.Scan(&p.ID, &p.Title, &p.Abstract, &presenters, &dayTok, &sessTok, &roomName); err != nil {
		return models.Proposal{}, err
	}
	_ = json.Unmarshal([]byte(presenters), &p.Presenters)
	if d, ok := models.ParseDay(dayTok); ok {
		p.Day = d
	}
	if s, ok := models.ParseSession(sessTok); ok {
		p.Session = s
	}
	if r, ok := models.ParseRoom(roomName); ok {
		p.Room = r
	}
	return p, nil
}

func (db *DB) queryProposals(query string, args ...any) ([]models.Proposal, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: query proposals: %w", err)
	}
	defer rows.Close()

	var out []models.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
