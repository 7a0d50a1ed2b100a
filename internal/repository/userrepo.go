// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/dogial/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides CRUD access for users.
type UserRepository interface {
	// Create inserts a new user. A taken email yields errs.ErrAlreadyExists.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// ExistsByEmail reports whether any user has the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update overwrites email, password hash and updated_at of an existing user.
	Update(ctx context.Context, u *model.User) error
	// Delete removes a user and, by cascade, the user's dogs.
	Delete(ctx context.Context, id uuid.UUID) error
}
