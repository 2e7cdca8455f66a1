package repositories

import "github.com/dgraph-io/badger/v4"

// OpenBadger opens the process-wide document store at path. The returned DB
// is shared by all repositories and must be closed on shutdown.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	return badger.Open(opts)
}
