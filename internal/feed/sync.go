package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"confsched/internal/catalog"
	"confsched/internal/models"
)

// Checksum returns the hex-encoded SHA-256 digest of a feed payload.
func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Sync fetches the feed and brings the catalog up to date. When the payload's
// checksum matches the last synced one the catalog is left untouched and the
// stored programme is returned. The changed result reports whether the catalog
// contents were replaced.
func Sync(ctx context.Context, src Source, db catalog.Store, logger *slog.Logger) (proposals []models.Proposal, changed bool, err error) {
	body, err := src.Fetch(ctx)
	if err != nil {
		return nil, false, err
	}

	cs := Checksum(body)
	prev, err := db.FeedChecksum()
	if err != nil {
		return nil, false, err
	}
	if cs == prev {
		logger.Debug("feed: payload unchanged, keeping catalog", slog.String("checksum", cs))
		stored, err := db.All()
		if err != nil {
			return nil, false, err
		}
		return stored, false, nil
	}

	parsed, err := Parse(body, logger)
	if err != nil {
		return nil, false, err
	}
	if err := db.ReplaceAll(parsed); err != nil {
		return nil, false, fmt.Errorf("feed: sync catalog: %w", err)
	}
	if err := db.SetFeedChecksum(cs); err != nil {
		return nil, false, err
	}

	logger.Info("feed: catalog synced",
		slog.Int("proposals", len(parsed)),
		slog.String("checksum", cs))
	return parsed, true, nil
}
