package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"confsched/internal/apperr"
	"confsched/internal/catalog"
	"confsched/internal/models"
)

// staticSource serves a fixed payload, like a remote feed that never changes.
type staticSource []byte

func (s staticSource) Fetch(context.Context) ([]byte, error) { return []byte(s), nil }

func (s staticSource) LocalPath() (string, bool) { return "", false }

// fakeStore is an in-memory catalog.Store recording ReplaceAll calls.
type fakeStore struct {
	proposals    []models.Proposal
	checksum     string
	replaceCalls int
}

func (f *fakeStore) ReplaceAll(ps []models.Proposal) error {
	f.proposals = ps
	f.replaceCalls++
	return nil
}

func (f *fakeStore) All() ([]models.Proposal, error) { return f.proposals, nil }

func (f *fakeStore) Get(id string) (models.Proposal, error) {
	for _, p := range f.proposals {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Proposal{}, apperr.ErrNotFound
}

func (f *fakeStore) ByDay(day models.Day) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range f.proposals {
		if p.Day == day {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) DayCounts() (map[models.Day]int, error) {
	counts := make(map[models.Day]int)
	for _, p := range f.proposals {
		counts[p.Day]++
	}
	return counts, nil
}

func (f *fakeStore) Search(string, int) ([]catalog.SearchHit, error) { return nil, nil }

func (f *fakeStore) FeedChecksum() (string, error) { return f.checksum, nil }
func (f *fakeStore) SetFeedChecksum(cs string) error {
	f.checksum = cs
	return nil
}
func (f *fakeStore) Close() error { return nil }

func TestFileSourceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programme.ics")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := FileSource{Path: path}
	body, err := src.Fetch(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "payload" {
		t.Errorf("body = %q", body)
	}
	if p, ok := src.LocalPath(); !ok || p != path {
		t.Errorf("LocalPath() = %q, %v", p, ok)
	}
}

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "programme.ics")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 8)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go func() {
		_ = Watch(ctx, path, discardLogger(), func() { fired <- struct{}{} })
	}()

	// Give the watcher time to register before touching the file.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}
}
