package bookmarks

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	bolt "go.etcd.io/bbolt"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "agenda.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadEmptyStore(t *testing.T) {
	store := testStore(t)
	ids, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
	if ids == nil {
		t.Error("ids should be an empty list, not nil")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testStore(t)

	want := []string{"p1", "p42", "p7"}
	if err := store.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveReplacesPreviousValue(t *testing.T) {
	store := testStore(t)

	if err := store.Save([]string{"p1", "p2"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save([]string{}); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("ids = %v, want empty after overwrite", got)
	}
}

func TestLoadToleratesGarbage(t *testing.T) {
	store := testStore(t)

	// Corrupt the stored payload directly.
	err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketAgenda)).Put([]byte(keyBookmarks), []byte("{not json"))
	})
	if err != nil {
		t.Fatal(err)
	}

	ids, err := store.Load()
	if err != nil {
		t.Fatalf("garbage should not surface an error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save([]string{"p9"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	got, err := reopened.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "p9" {
		t.Errorf("ids = %v, want [p9]", got)
	}
}
