// Package store is the permanent storage backend for command history, kept in
// a bbolt database file.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.elcc.sh/pkg/logutil"
	"src.elcc.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// initDB maps the descriptions of initialization steps to the functions doing
// them; each runs in the transaction that opens the database.
var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend for command history.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

func dbWithDefaultOptions(dbname string) (*bolt.DB, error) {
	// A second process using the same file waits at most a second for the
	// lock instead of hanging.
	return bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := dbWithDefaultOptions(dbname)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbname, err)
	}
	st, err := NewStoreFromDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dbStore{db: db}, nil
}

// Close closes the underlying database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
