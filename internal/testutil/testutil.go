// Package testutil provides shared test helpers for setting up catalogs and
// bookmark stores.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"confsched/internal/bookmarks"
	"confsched/internal/catalog"
	"confsched/internal/models"
)

// TestCatalog creates a temporary SQLite catalog that is automatically cleaned up.
func TestCatalog(t *testing.T) *catalog.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "confsched-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := catalog.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestBookmarks creates a temporary bbolt bookmark store that is automatically
// cleaned up.
func TestBookmarks(t *testing.T) *bookmarks.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agenda.db")
	store, err := bookmarks.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// SampleProgramme returns a small fixed programme used across tests.
func SampleProgramme() []models.Proposal {
	return []models.Proposal{
		{
			ID:       "p1",
			Title:    "Taming the Scheduler",
			Abstract: "A deep dive into goroutine scheduling and what it means for latency.",
			Presenters: []models.Presenter{
				{FirstName: "Ada", LastName: "Okafor"},
			},
			Day:     models.Monday,
			Session: models.MorningA,
			Room:    models.Auditorium,
		},
		{
			ID:       "p2",
			Title:    "Errors Are Values",
			Abstract: "Patterns for error handling in large codebases.",
			Presenters: []models.Presenter{
				{FirstName: "Bram", LastName: "Visser"},
			},
			Day:     models.Monday,
			Session: models.AfternoonA,
			Room:    models.Room101,
		},
		{
			ID:       "p3",
			Title:    "SQLite Everywhere",
			Abstract: "Using embedded databases for local-first applications.",
			Presenters: []models.Presenter{
				{FirstName: "Carla", LastName: "Jimenez"},
				{FirstName: "Deniz", LastName: "Aydin"},
			},
			Day:     models.Tuesday,
			Session: models.MorningB,
			Room:    models.Room102,
		},
		{
			ID:       "p4",
			Title:    "Live Coding a Parser",
			Abstract: "Building a parser from scratch, latency budget included.",
			Presenters: []models.Presenter{
				{FirstName: "Edda", LastName: "Lindqvist"},
			},
			Day:     models.Wednesday,
			Session: models.Evening,
			Room:    models.WorkshopLab,
		},
	}
}
