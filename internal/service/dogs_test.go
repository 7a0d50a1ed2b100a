package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/and161185/dogial/internal/errs"
	"github.com/and161185/dogial/internal/model"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap/zaptest"
)

func newDogSvc(t *testing.T, dogs *fakeDogs, users *fakeUsers, now time.Time) *DogServiceImpl {
	s := NewDogService(dogs, users, zaptest.NewLogger(t))
	s.now = fixedClock(now)
	return s
}

func rexInput(owner uuid.UUID) model.DogInput {
	w := 20.0
	return model.DogInput{OwnerID: owner, Name: "Rex", Breed: "Boxer", Gender: "male", Weight: &w}
}

func TestDogService_Create(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	owner := &model.User{ID: uuid.Must(uuid.NewV4()), Email: "o@x.com"}
	dogs := newFakeDogs()
	s := newDogSvc(t, dogs, newFakeUsers(owner), now)
	ctx := context.Background()

	d, err := s.Create(ctx, rexInput(owner.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ID == uuid.Nil || d.OwnerID != owner.ID || !d.CreatedAt.Equal(now) {
		t.Fatalf("bad dog: %+v", d)
	}
	if _, ok := dogs.byID[d.ID]; !ok {
		t.Fatalf("dog not stored")
	}

	_, err = s.Create(ctx, rexInput(uuid.Must(uuid.NewV4())))
	if !errors.Is(err, errs.ErrOwnerNotFound) || !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("missing owner: want ErrOwnerNotFound, got %v", err)
	}
	if len(dogs.byID) != 1 {
		t.Fatalf("orphan dog was stored")
	}
}

func TestDogService_Create_Validation(t *testing.T) {
	t.Parallel()
	owner := uuid.Must(uuid.NewV4())
	s := newDogSvc(t, newFakeDogs(), newFakeUsers(), time.Now())

	heavy := 1000.0
	cases := map[string]func(*model.DogInput){
		"no owner":  func(in *model.DogInput) { in.OwnerID = uuid.Nil },
		"no name":   func(in *model.DogInput) { in.Name = "  " },
		"no breed":  func(in *model.DogInput) { in.Breed = "" },
		"no gender": func(in *model.DogInput) { in.Gender = "" },
		"too heavy": func(in *model.DogInput) { in.Weight = &heavy },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			in := rexInput(owner)
			mut(&in)
			if _, err := s.Create(context.Background(), in); !errors.Is(err, errs.ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDogService_Update_OwnerCheckedBeforeWrite(t *testing.T) {
	t.Parallel()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	owner := &model.User{ID: uuid.Must(uuid.NewV4()), Email: "o@x.com"}
	other := &model.User{ID: uuid.Must(uuid.NewV4()), Email: "p@x.com"}
	dog := &model.Dog{ID: uuid.Must(uuid.NewV4()), OwnerID: owner.ID, Name: "Rex", Breed: "Boxer", Gender: "male", CreatedAt: created, UpdatedAt: created}
	dogs := newFakeDogs(dog)
	later := created.Add(time.Hour)
	s := newDogSvc(t, dogs, newFakeUsers(owner, other), later)
	ctx := context.Background()

	_, err := s.Update(ctx, dog.ID, rexInput(uuid.Must(uuid.NewV4())))
	if !errors.Is(err, errs.ErrOwnerNotFound) {
		t.Fatalf("want ErrOwnerNotFound, got %v", err)
	}
	if dogs.updates != 0 || dogs.byID[dog.ID].OwnerID != owner.ID {
		t.Fatalf("stored dog must be unchanged")
	}

	if _, err := s.Update(ctx, uuid.Must(uuid.NewV4()), rexInput(owner.ID)); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("missing dog: want ErrNotFound, got %v", err)
	}

	in := rexInput(other.ID)
	in.Name = "Max"
	got, err := s.Update(ctx, dog.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.OwnerID != other.ID || got.Name != "Max" || !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(later) {
		t.Fatalf("bad updated dog: %+v", got)
	}
}

func TestDogService_Patch(t *testing.T) {
	t.Parallel()
	owner := &model.User{ID: uuid.Must(uuid.NewV4()), Email: "o@x.com"}
	w := 10.0
	dog := &model.Dog{ID: uuid.Must(uuid.NewV4()), OwnerID: owner.ID, Name: "Rex", Breed: "Boxer", Gender: "male", Weight: &w}
	s := newDogSvc(t, newFakeDogs(dog), newFakeUsers(owner), time.Now())

	name := "Max"
	neutered := true
	got, err := s.Patch(context.Background(), dog.ID, model.DogPatch{Name: &name, IsNeutered: &neutered})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if got.Name != "Max" || got.Breed != "Boxer" || *got.Weight != 10 || !*got.IsNeutered {
		t.Fatalf("patch must keep unset fields: %+v", got)
	}

	empty := ""
	if _, err := s.Patch(context.Background(), dog.ID, model.DogPatch{Name: &empty}); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestDogService_ListGetDelete(t *testing.T) {
	t.Parallel()
	owner := &model.User{ID: uuid.Must(uuid.NewV4()), Email: "o@x.com"}
	dog := &model.Dog{ID: uuid.Must(uuid.NewV4()), OwnerID: owner.ID, Name: "Rex"}
	dogs := newFakeDogs(dog)
	s := newDogSvc(t, dogs, newFakeUsers(owner), time.Now())
	ctx := context.Background()

	list, err := s.ListByOwner(ctx, owner.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByOwner: %v %v", list, err)
	}
	if _, err := s.ListByOwner(ctx, uuid.Must(uuid.NewV4())); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown owner: want ErrNotFound, got %v", err)
	}

	dogs.listErr = errors.New("boom")
	if _, err := s.ListByOwner(ctx, owner.ID); !errors.Is(err, errs.ErrInternal) {
		t.Fatalf("want ErrInternal, got %v", err)
	}

	if got, err := s.Get(ctx, dog.ID); err != nil || got.Name != "Rex" {
		t.Fatalf("Get: %+v %v", got, err)
	}
	if err := s.Delete(ctx, dog.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, dog.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("after delete: want ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, dog.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestDogService_RepoOwnerRaceSurfacesOwnerNotFound(t *testing.T) {
	t.Parallel()
	owner := &model.User{ID: uuid.Must(uuid.NewV4()), Email: "o@x.com"}
	dogs := newFakeDogs()
	dogs.createErr = errs.ErrOwnerNotFound
	s := newDogSvc(t, dogs, newFakeUsers(owner), time.Now())

	if _, err := s.Create(context.Background(), rexInput(owner.ID)); !errors.Is(err, errs.ErrOwnerNotFound) {
		t.Fatalf("want ErrOwnerNotFound, got %v", err)
	}
}
