package service

import (
	"context"
	"time"

	"github.com/and161185/dogial/internal/errs"
	"github.com/and161185/dogial/internal/limiter"
	"github.com/and161185/dogial/internal/model"
	"github.com/and161185/dogial/internal/repository"
	"github.com/gofrs/uuid/v5"
)

type fakeUsers struct {
	byEmail map[string]*model.User

	createErr error
	getErr    error
	existsErr error
	updateErr error
	deleteErr error

	creates int
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers(us ...*model.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]*model.User{}}
	for _, u := range us {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return nil
}
func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}
func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}
func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byEmail[email]
	return ok, nil
}
func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for k, cur := range f.byEmail {
		if cur.ID == u.ID {
			delete(f.byEmail, k)
			c := *u
			f.byEmail[u.Email] = &c
			return nil
		}
	}
	return errs.ErrNotFound
}
func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for k, u := range f.byEmail {
		if u.ID == id {
			delete(f.byEmail, k)
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeDogs struct {
	byID map[uuid.UUID]*model.Dog

	createErr error
	updateErr error
	listErr   error

	updates int
}

var _ repository.DogRepository = (*fakeDogs)(nil)

func newFakeDogs(ds ...*model.Dog) *fakeDogs {
	f := &fakeDogs{byID: map[uuid.UUID]*model.Dog{}}
	for _, d := range ds {
		f.byID[d.ID] = d
	}
	return f
}

func (f *fakeDogs) Create(_ context.Context, d *model.Dog) error {
	if f.createErr != nil {
		return f.createErr
	}
	c := *d
	f.byID[d.ID] = &c
	return nil
}
func (f *fakeDogs) GetByID(_ context.Context, id uuid.UUID) (*model.Dog, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *d
	return &c, nil
}
func (f *fakeDogs) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Dog, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []model.Dog{}
	for _, d := range f.byID {
		if d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}
func (f *fakeDogs) Update(_ context.Context, d *model.Dog) error {
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[d.ID]; !ok {
		return errs.ErrNotFound
	}
	c := *d
	f.byID[d.ID] = &c
	return nil
}
func (f *fakeDogs) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	successErr error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return l.successErr
}
func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

type fakeIssuer struct {
	err      error
	subjects []string
}

func (i *fakeIssuer) Issue(subject string, roles []string) (model.Tokens, error) {
	if i.err != nil {
		return model.Tokens{}, i.err
	}
	i.subjects = append(i.subjects, subject)
	return model.Tokens{AccessToken: "tok-" + subject, TokenType: model.TokenTypeBearer}, nil
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }
