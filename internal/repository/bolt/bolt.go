// Package bolt implements the repository interfaces on top of bbolt, an
// embedded key-value store.
//
// WHY A KV STORE?
// The previous deployment kept the whole user collection as one JSON blob
// under a single key and rewrote it on every mutation — concurrent writers
// could silently lose each other's updates. bbolt keeps the operational
// simplicity (one file, no server process) while fixing that gap: each user
// is its own record, and every mutation runs inside a serialized write
// transaction.
//
// BUCKET LAYOUT:
//
//	users        user ID → JSON-encoded model.User
//	email_index  normalized email → user ID
//
// The index makes email uniqueness a transactional check instead of a
// linear scan racing against other writers. User IDs are xid strings, which
// sort chronologically as bytes, so iterating the users bucket in key order
// yields registration order for free.
package bolt

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketUsers      = []byte("users")
	bucketEmailIndex = []byte("email_index")
)

// DB wraps a bbolt database and provides repository methods.
type DB struct {
	db *bbolt.DB
}

// New opens (creating if necessary) the database file at dbPath and ensures
// the buckets exist. bbolt takes an exclusive file lock, so a second process
// opening the same path blocks — the 1s timeout turns that into an error
// instead of a silent hang.
func New(dbPath string) (*DB, error) {
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: opening database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketUsers); err != nil {
			return fmt.Errorf("creating users bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists(bucketEmailIndex); err != nil {
			return fmt.Errorf("creating email index bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: initializing buckets: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database file and releases its lock.
func (d *DB) Close() error {
	return d.db.Close()
}
