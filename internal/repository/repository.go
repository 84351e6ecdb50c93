// Package repository defines the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (bolt).
package repository

import (
	"context"

	"github.com/legalforensics/leadcapture/internal/model"
)

// UserRepository is the persistence contract for captured leads.
//
// Create must enforce email uniqueness atomically — the email is the unique
// key and two concurrent registrations with the same address must not both
// succeed. List returns every user in registration order; filtering,
// pagination and stats are service concerns, the store stays dumb.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id string) error
}
