package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgcrypto "github.com/and161185/dogial/internal/crypto"
	"github.com/and161185/dogial/internal/errs"
	"github.com/and161185/dogial/internal/model"
	"github.com/and161185/dogial/internal/repository"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// UserService manages user accounts.
type UserService interface {
	// Create registers a user with a hashed password.
	Create(ctx context.Context, email, password string) (model.User, error)
	// Get returns a user by ID.
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	// Update changes email and/or password of an existing user.
	Update(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (model.User, error)
	// Delete removes the user together with the user's dogs.
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserServiceImpl struct {
	users repository.UserRepository
	log   *zap.Logger
	now   func() time.Time
}

// NewUserService constructs UserService.
func NewUserService(users repository.UserRepository, log *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{users: users, log: log, now: time.Now}
}

func (s *UserServiceImpl) Create(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, fmt.Errorf("%w: email and password are required", errs.ErrInvalidInput)
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.User{}, mask(s.log, "user exists", err)
	}
	if taken {
		return model.User{}, errs.ErrAlreadyExists
	}

	id, err := uuid.NewV4()
	if err != nil {
		return model.User{}, mask(s.log, "user id", err)
	}
	now := s.now().UTC()
	u := model.User{
		ID:           id,
		Email:        email,
		PasswordHash: pkgcrypto.HashPassword(password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return model.User{}, mask(s.log, "user create", err)
	}
	return u, nil
}

func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, mask(s.log, "user get", err)
	}
	return *u, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, mask(s.log, "user get", err)
	}

	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email == "" {
			return model.User{}, fmt.Errorf("%w: email must not be empty", errs.ErrInvalidInput)
		}
		if email != u.Email {
			taken, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return model.User{}, mask(s.log, "user exists", err)
			}
			if taken {
				return model.User{}, errs.ErrAlreadyExists
			}
		}
		u.Email = email
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return model.User{}, fmt.Errorf("%w: password must not be empty", errs.ErrInvalidInput)
		}
		u.PasswordHash = pkgcrypto.HashPassword(*upd.Password)
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		return model.User{}, mask(s.log, "user update", err)
	}
	return *u, nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return mask(s.log, "user delete", s.users.Delete(ctx, id))
}
