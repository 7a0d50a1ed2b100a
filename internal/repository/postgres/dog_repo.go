package postgres

import (
	"context"
	"errors"

	"github.com/and161185/dogial/internal/errs"
	"github.com/and161185/dogial/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// DogRepo implements DogRepository using PostgreSQL.
type DogRepo struct{ db *DB }

// NewDogRepo constructs a dog repository.
func NewDogRepo(db *DB) *DogRepo { return &DogRepo{db: db} }

const dogColumns = `id, owner_id, name, breed, gender, weight, age, is_neutered, behavior, pedigree, created_at, updated_at`

// Create locks the owner row and inserts the dog in one transaction.
func (r *DogRepo) Create(ctx context.Context, d *model.Dog) error {
	const ins = `
INSERT INTO dogs (` + dogColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	return r.db.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, d.OwnerID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, ins,
			d.ID, d.OwnerID, d.Name, d.Breed, d.Gender,
			d.Weight, d.Age, d.IsNeutered, d.Behavior, d.Pedigree,
			d.CreatedAt, d.UpdatedAt,
		)
		if isForeignKeyViolation(err) {
			return errs.ErrOwnerNotFound
		}
		return err
	})
}

// GetByID selects a dog by ID.
func (r *DogRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Dog, error) {
	const q = `SELECT ` + dogColumns + ` FROM dogs WHERE id=$1`
	d, err := scanDog(r.db.Pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	return d, err
}

// ListByOwner returns dogs of an owner, oldest first.
func (r *DogRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Dog, error) {
	const q = `SELECT ` + dogColumns + ` FROM dogs WHERE owner_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// Update locks the (possibly new) owner and overwrites the dog in one transaction.
func (r *DogRepo) Update(ctx context.Context, d *model.Dog) error {
	const upd = `
UPDATE dogs
SET owner_id=$2, name=$3, breed=$4, gender=$5, weight=$6, age=$7,
    is_neutered=$8, behavior=$9, pedigree=$10, updated_at=$11
WHERE id=$1`
	return r.db.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, d.OwnerID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, upd,
			d.ID, d.OwnerID, d.Name, d.Breed, d.Gender,
			d.Weight, d.Age, d.IsNeutered, d.Behavior, d.Pedigree,
			d.UpdatedAt,
		)
		if isForeignKeyViolation(err) {
			return errs.ErrOwnerNotFound
		}
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}

// Delete removes a dog by ID.
func (r *DogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM dogs WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// lockOwner holds a share lock on the owner row until the transaction ends,
// so a concurrent user delete cannot orphan the dog being written.
func lockOwner(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) error {
	const q = `SELECT 1 FROM users WHERE id=$1 FOR SHARE`
	var one int
	if err := tx.QueryRow(ctx, q, ownerID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrOwnerNotFound
		}
		return err
	}
	return nil
}

func scanDog(row pgx.Row) (*model.Dog, error) {
	var d model.Dog
	err := row.Scan(
		&d.ID, &d.OwnerID, &d.Name, &d.Breed, &d.Gender,
		&d.Weight, &d.Age, &d.IsNeutered, &d.Behavior, &d.Pedigree,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
