// Package memory provides in-process repository implementations used for
// development runs without a database and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/and161185/dogial/internal/errs"
	"github.com/and161185/dogial/internal/model"
	"github.com/gofrs/uuid/v5"
)

// Store holds users and dogs behind one lock, so owner checks and dog writes
// are atomic with respect to user deletion.
type Store struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]model.User
	byEmail map[string]uuid.UUID
	dogs    map[uuid.UUID]model.Dog
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:   make(map[uuid.UUID]model.User),
		byEmail: make(map[string]uuid.UUID),
		dogs:    make(map[uuid.UUID]model.Dog),
	}
}

// Users returns a UserRepository view of the store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Dogs returns a DogRepository view of the store.
func (s *Store) Dogs() *DogRepo { return &DogRepo{s: s} }

// UserRepo implements repository.UserRepository in memory.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *model.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[u.Email]; taken {
		return errs.ErrAlreadyExists
	}
	if _, dup := s.users[u.ID]; dup {
		return errs.ErrAlreadyExists
	}
	s.users[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (r *UserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

func (r *UserRepo) Update(_ context.Context, u *model.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return errs.ErrNotFound
	}
	if owner, taken := s.byEmail[u.Email]; taken && owner != u.ID {
		return errs.ErrAlreadyExists
	}
	delete(s.byEmail, cur.Email)
	s.byEmail[u.Email] = u.ID

	cur.Email = u.Email
	cur.PasswordHash = u.PasswordHash
	cur.UpdatedAt = u.UpdatedAt
	s.users[u.ID] = cur
	return nil
}

// Delete removes the user and every dog the user owns.
func (r *UserRepo) Delete(_ context.Context, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	delete(s.users, id)
	delete(s.byEmail, u.Email)
	for dogID, d := range s.dogs {
		if d.OwnerID == id {
			delete(s.dogs, dogID)
		}
	}
	return nil
}

// DogRepo implements repository.DogRepository in memory.
type DogRepo struct{ s *Store }

func (r *DogRepo) Create(_ context.Context, d *model.Dog) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[d.OwnerID]; !ok {
		return errs.ErrOwnerNotFound
	}
	if _, dup := s.dogs[d.ID]; dup {
		return errs.ErrAlreadyExists
	}
	s.dogs[d.ID] = cloneDog(*d)
	return nil
}

func (r *DogRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Dog, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dogs[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	d = cloneDog(d)
	return &d, nil
}

func (r *DogRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Dog, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Dog, 0)
	for _, d := range s.dogs {
		if d.OwnerID == ownerID {
			out = append(out, cloneDog(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *DogRepo) Update(_ context.Context, d *model.Dog) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.dogs[d.ID]
	if !ok {
		return errs.ErrNotFound
	}
	if _, ok := s.users[d.OwnerID]; !ok {
		return errs.ErrOwnerNotFound
	}
	next := cloneDog(*d)
	next.CreatedAt = cur.CreatedAt
	s.dogs[d.ID] = next
	return nil
}

func (r *DogRepo) Delete(_ context.Context, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dogs[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.dogs, id)
	return nil
}

// cloneDog detaches the optional attributes from the caller's pointers.
func cloneDog(d model.Dog) model.Dog {
	d.Weight = clonePtr(d.Weight)
	d.Age = clonePtr(d.Age)
	d.IsNeutered = clonePtr(d.IsNeutered)
	d.Behavior = clonePtr(d.Behavior)
	d.Pedigree = clonePtr(d.Pedigree)
	return d
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
