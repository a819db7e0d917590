// Package feed loads the conference programme from an iCalendar feed and
// serializes agendas back to iCalendar for export.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Source supplies the raw feed payload. Implementations cover a local file and
// a remote URL; the core never sees this interface.
type Source interface {
	// Fetch returns the raw ICS payload.
	Fetch(ctx context.Context) ([]byte, error)
	// LocalPath returns the on-disk path and true when the source is a local
	// file that can be watched for changes.
	LocalPath() (string, bool)
}

// FileSource reads the feed from a local file.
type FileSource struct {
	Path string
}

// Fetch reads the file.
func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("feed: read %s: %w", s.Path, err)
	}
	return data, nil
}

// LocalPath returns the file path.
func (s FileSource) LocalPath() (string, bool) {
	return s.Path, true
}

// HTTPSource fetches the feed from a remote URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch performs the HTTP GET.
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: fetch %s: unexpected status %d", s.URL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("feed: read body: %w", err)
	}
	return data, nil
}

// LocalPath reports that a remote source has no watchable file.
func (s HTTPSource) LocalPath() (string, bool) {
	return "", false
}
