package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/and161185/dogial/internal/errs"
	"github.com/and161185/dogial/internal/model"
	"github.com/and161185/dogial/internal/repository"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// maxWeight is the largest value numeric(5,2) holds.
const maxWeight = 999.99

// DogService manages dogs and keeps them bound to existing owners.
type DogService interface {
	Create(ctx context.Context, in model.DogInput) (model.Dog, error)
	Get(ctx context.Context, id uuid.UUID) (model.Dog, error)
	// Update replaces every client attribute of the dog.
	Update(ctx context.Context, id uuid.UUID, in model.DogInput) (model.Dog, error)
	// Patch changes only the attributes set in p.
	Patch(ctx context.Context, id uuid.UUID, p model.DogPatch) (model.Dog, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByOwner returns the owner's dogs, oldest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Dog, error)
}

type DogServiceImpl struct {
	dogs  repository.DogRepository
	users repository.UserRepository
	log   *zap.Logger
	now   func() time.Time
}

// NewDogService constructs DogService.
func NewDogService(dogs repository.DogRepository, users repository.UserRepository, log *zap.Logger) *DogServiceImpl {
	return &DogServiceImpl{dogs: dogs, users: users, log: log, now: time.Now}
}

func (s *DogServiceImpl) Create(ctx context.Context, in model.DogInput) (model.Dog, error) {
	if err := validateDog(&in); err != nil {
		return model.Dog{}, err
	}
	if err := s.ownerExists(ctx, in.OwnerID); err != nil {
		return model.Dog{}, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return model.Dog{}, mask(s.log, "dog id", err)
	}
	now := s.now().UTC()
	d := model.Dog{ID: id, CreatedAt: now, UpdatedAt: now}
	in.Apply(&d)

	if err := s.dogs.Create(ctx, &d); err != nil {
		return model.Dog{}, mask(s.log, "dog create", err)
	}
	return d, nil
}

func (s *DogServiceImpl) Get(ctx context.Context, id uuid.UUID) (model.Dog, error) {
	d, err := s.dogs.GetByID(ctx, id)
	if err != nil {
		return model.Dog{}, mask(s.log, "dog get", err)
	}
	return *d, nil
}

func (s *DogServiceImpl) Update(ctx context.Context, id uuid.UUID, in model.DogInput) (model.Dog, error) {
	d, err := s.dogs.GetByID(ctx, id)
	if err != nil {
		return model.Dog{}, mask(s.log, "dog get", err)
	}
	return s.replace(ctx, d, in)
}

func (s *DogServiceImpl) Patch(ctx context.Context, id uuid.UUID, p model.DogPatch) (model.Dog, error) {
	d, err := s.dogs.GetByID(ctx, id)
	if err != nil {
		return model.Dog{}, mask(s.log, "dog get", err)
	}
	return s.replace(ctx, d, p.Merge(d.Input()))
}

// replace validates in, checks the owner, then writes in over d.
func (s *DogServiceImpl) replace(ctx context.Context, d *model.Dog, in model.DogInput) (model.Dog, error) {
	if err := validateDog(&in); err != nil {
		return model.Dog{}, err
	}
	if err := s.ownerExists(ctx, in.OwnerID); err != nil {
		return model.Dog{}, err
	}

	next := *d
	in.Apply(&next)
	next.UpdatedAt = s.now().UTC()
	if err := s.dogs.Update(ctx, &next); err != nil {
		return model.Dog{}, mask(s.log, "dog update", err)
	}
	return next, nil
}

func (s *DogServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return mask(s.log, "dog delete", s.dogs.Delete(ctx, id))
}

func (s *DogServiceImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Dog, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, mask(s.log, "owner get", err)
	}
	list, err := s.dogs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, mask(s.log, "dog list", err)
	}
	return list, nil
}

func (s *DogServiceImpl) ownerExists(ctx context.Context, ownerID uuid.UUID) error {
	_, err := s.users.GetByID(ctx, ownerID)
	if errors.Is(err, errs.ErrNotFound) {
		return errs.ErrOwnerNotFound
	}
	return mask(s.log, "owner get", err)
}

func validateDog(in *model.DogInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Breed = strings.TrimSpace(in.Breed)
	in.Gender = strings.TrimSpace(in.Gender)

	switch {
	case in.OwnerID == uuid.Nil:
		return fmt.Errorf("%w: ownerId is required", errs.ErrInvalidInput)
	case in.Name == "":
		return fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	case in.Breed == "":
		return fmt.Errorf("%w: breed is required", errs.ErrInvalidInput)
	case in.Gender == "":
		return fmt.Errorf("%w: gender is required", errs.ErrInvalidInput)
	case in.Weight != nil && (*in.Weight < 0 || *in.Weight > maxWeight):
		return fmt.Errorf("%w: weight out of range", errs.ErrInvalidInput)
	}
	return nil
}
