// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// RoleUser is the role granted to every authenticated account.
const RoleUser = "ROLE_USER"

// TokenTypeBearer is reported alongside issued access tokens.
const TokenTypeBearer = "Bearer"

// Tokens collects an issued access token and its metadata.
type Tokens struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	Subject string // user email
	Roles   []string
}

// User represents an account stored on the server. The password is never stored in plaintext.
type User struct {
	ID           uuid.UUID // PK
	Email        string    // unique
	PasswordHash string    // encoded argon2id digest
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries the mutable user fields. Nil means "keep current value".
type UserUpdate struct {
	Email    *string
	Password *string
}

// Dog is a registered dog bound to an existing owner.
type Dog struct {
	ID      uuid.UUID // PK
	OwnerID uuid.UUID // FK -> users.id

	Name   string
	Breed  string
	Gender string

	Weight     *float64 // kg, numeric(5,2)
	Age        *string
	IsNeutered *bool
	Behavior   *string
	Pedigree   *bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DogInput is the client-supplied part of a dog, used for create and full update.
type DogInput struct {
	OwnerID    uuid.UUID
	Name       string
	Breed      string
	Gender     string
	Weight     *float64
	Age        *string
	IsNeutered *bool
	Behavior   *string
	Pedigree   *bool
}

// Apply copies the input attributes onto d, leaving identity and timestamps alone.
func (in DogInput) Apply(d *Dog) {
	d.OwnerID = in.OwnerID
	d.Name = in.Name
	d.Breed = in.Breed
	d.Gender = in.Gender
	d.Weight = in.Weight
	d.Age = in.Age
	d.IsNeutered = in.IsNeutered
	d.Behavior = in.Behavior
	d.Pedigree = in.Pedigree
}

// DogPatch carries a partial dog update. Nil fields keep the stored value.
type DogPatch struct {
	OwnerID    *uuid.UUID
	Name       *string
	Breed      *string
	Gender     *string
	Weight     *float64
	Age        *string
	IsNeutered *bool
	Behavior   *string
	Pedigree   *bool
}

// Merge overlays the set fields of p onto in.
func (p DogPatch) Merge(in DogInput) DogInput {
	if p.OwnerID != nil {
		in.OwnerID = *p.OwnerID
	}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Breed != nil {
		in.Breed = *p.Breed
	}
	if p.Gender != nil {
		in.Gender = *p.Gender
	}
	if p.Weight != nil {
		in.Weight = p.Weight
	}
	if p.Age != nil {
		in.Age = p.Age
	}
	if p.IsNeutered != nil {
		in.IsNeutered = p.IsNeutered
	}
	if p.Behavior != nil {
		in.Behavior = p.Behavior
	}
	if p.Pedigree != nil {
		in.Pedigree = p.Pedigree
	}
	return in
}

// Input returns the client-controlled attributes of d.
func (d Dog) Input() DogInput {
	return DogInput{
		OwnerID:    d.OwnerID,
		Name:       d.Name,
		Breed:      d.Breed,
		Gender:     d.Gender,
		Weight:     d.Weight,
		Age:        d.Age,
		IsNeutered: d.IsNeutered,
		Behavior:   d.Behavior,
		Pedigree:   d.Pedigree,
	}
}
