package catalog

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"confsched/internal/apperr"
	"confsched/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "confsched-catalog-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testProgramme() []models.Proposal {
	return []models.Proposal{
		{
			ID:         "p1",
			Title:      "Taming the Scheduler",
			Abstract:   "A deep dive into goroutine scheduling.",
			Presenters: []models.Presenter{{FirstName: "Ada", LastName: "Okafor"}},
			Day:        models.Monday,
			Session:    models.MorningA,
			Room:       models.Auditorium,
		},
		{
			ID:       "p2",
			Title:    "Errors Are Values",
			Abstract: "Patterns for error handling in large codebases.",
			Day:      models.Monday,
			Session:  models.AfternoonA,
			Room:     models.Room101,
		},
		{
			ID:       "p3",
			Title:    "SQLite Everywhere",
			Abstract: "Using embedded databases for local-first applications.",
			Day:      models.Tuesday,
			Session:  models.MorningB,
			Room:     models.Room102,
		},
	}
}

func TestReplaceAllAndAllPreserveOrder(t *testing.T) {
	db := testDB(t)
	want := testProgramme()
	if err := db.ReplaceAll(want); err != nil {
		t.Fatal(err)
	}

	got, err := db.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d proposals, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("order: got[%d] = %s, want %s", i, got[i].ID, want[i].ID)
		}
	}
	if diff := cmp.Diff(want[0], got[0]); diff != "" {
		t.Errorf("proposal round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceAllSwapsContents(t *testing.T) {
	db := testDB(t)
	if err := db.ReplaceAll(testProgramme()); err != nil {
		t.Fatal(err)
	}
	replacement := []models.Proposal{
		{ID: "r1", Title: "Replacement", Day: models.Wednesday, Session: models.Evening, Room: models.WorkshopLab},
	}
	if err := db.ReplaceAll(replacement); err != nil {
		t.Fatal(err)
	}

	got, err := db.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("contents = %v, want only r1", got)
	}
}

func TestGet(t *testing.T) {
	db := testDB(t)
	if err := db.ReplaceAll(testProgramme()); err != nil {
		t.Fatal(err)
	}

	p, err := db.Get("p2")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Errors Are Values" || p.Room != models.Room101 {
		t.Errorf("p2 = %+v", p)
	}

	_, err = db.Get("999")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get(999) err = %v, want ErrNotFound", err)
	}
}

func TestByDayAndCounts(t *testing.T) {
	db := testDB(t)
	if err := db.ReplaceAll(testProgramme()); err != nil {
		t.Fatal(err)
	}

	monday, err := db.ByDay(models.Monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(monday) != 2 || monday[0].ID != "p1" || monday[1].ID != "p2" {
		t.Errorf("monday = %v", monday)
	}

	counts, err := db.DayCounts()
	if err != nil {
		t.Fatal(err)
	}
	if counts[models.Monday] != 2 || counts[models.Tuesday] != 1 || counts[models.Wednesday] != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestFeedChecksum(t *testing.T) {
	db := testDB(t)

	cs, err := db.FeedChecksum()
	if err != nil {
		t.Fatal(err)
	}
	if cs != "" {
		t.Errorf("initial checksum = %q, want empty", cs)
	}

	if err := db.SetFeedChecksum("abc123"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetFeedChecksum("def456"); err != nil {
		t.Fatal(err)
	}
	cs, err = db.FeedChecksum()
	if err != nil {
		t.Fatal(err)
	}
	if cs != "def456" {
		t.Errorf("checksum = %q, want def456", cs)
	}
}
