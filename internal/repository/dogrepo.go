package repository

import (
	"context"

	"github.com/and161185/dogial/internal/model"
	"github.com/gofrs/uuid/v5"
)

// DogRepository provides owner-checked access to dogs.
type DogRepository interface {
	// Create inserts a dog. The owner must exist at commit time (errs.ErrOwnerNotFound otherwise).
	Create(ctx context.Context, d *model.Dog) error
	// GetByID returns a single dog by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Dog, error)
	// ListByOwner returns the owner's dogs ordered by creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Dog, error)
	// Update overwrites all mutable attributes. The (possibly new) owner must exist.
	Update(ctx context.Context, d *model.Dog) error
	// Delete removes a dog by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
