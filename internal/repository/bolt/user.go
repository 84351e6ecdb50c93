package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/xid"
	"go.etcd.io/bbolt"

	"github.com/legalforensics/leadcapture/internal/apperror"
	"github.com/legalforensics/leadcapture/internal/model"
	"github.com/legalforensics/leadcapture/internal/repository"
)

// Compile-time check that *DB satisfies the repository contract.
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user, generating its ID.
//
// The duplicate check and both writes happen inside one Update transaction.
// bbolt serializes writers, so two concurrent registrations with the same
// email cannot both pass the index lookup — the loser gets ErrDuplicate.
func (d *DB) Create(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	user.ID = xid.New().String()

	return d.db.Update(func(tx *bbolt.Tx) error {
		index := tx.Bucket(bucketEmailIndex)
		if existing := index.Get([]byte(user.Email)); existing != nil {
			return apperror.Duplicate("User with this email already exists")
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("bolt: marshaling user: %w", err)
		}

		if err := tx.Bucket(bucketUsers).Put([]byte(user.ID), data); err != nil {
			return fmt.Errorf("bolt: storing user: %w", err)
		}
		if err := index.Put([]byte(user.Email), []byte(user.ID)); err != nil {
			return fmt.Errorf("bolt: indexing email: %w", err)
		}
		return nil
	})
}

// List returns all users in registration order (xid keys sort by creation
// time, and bbolt iterates keys in byte order).
func (d *DB) List(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	users := []model.User{}
	err := d.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUsers).ForEach(func(k, v []byte) error {
			var u model.User
			if err := json.Unmarshal(v, &u); err != nil {
				return fmt.Errorf("bolt: decoding user %s: %w", k, err)
			}
			users = append(users, u)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("bolt: listing users: %w", err)
	}
	return users, nil
}

// Delete removes a user by ID, along with its email index entry.
// Returns apperror.ErrNotFound when the ID doesn't exist; the store is left
// untouched in that case.
func (d *DB) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return d.db.Update(func(tx *bbolt.Tx) error {
		users := tx.Bucket(bucketUsers)
		data := users.Get([]byte(id))
		if data == nil {
			return apperror.NotFound("user", id)
		}

		var u model.User
		if err := json.Unmarshal(data, &u); err != nil {
			return fmt.Errorf("bolt: decoding user %s: %w", id, err)
		}

		if err := users.Delete([]byte(id)); err != nil {
			return fmt.Errorf("bolt: deleting user %s: %w", id, err)
		}
		if err := tx.Bucket(bucketEmailIndex).Delete([]byte(u.Email)); err != nil {
			return fmt.Errorf("bolt: deleting email index for %s: %w", id, err)
		}
		return nil
	})
}
