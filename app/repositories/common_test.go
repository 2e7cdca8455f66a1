package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
)

// setupTestDB opens a badger database in a per-test temp directory.
func setupTestDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := OpenBadger(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return db
}
