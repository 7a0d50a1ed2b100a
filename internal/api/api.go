// Package api defines the JSON request and response bodies of the HTTP interface.
package api

import "time"

// LoginRequest is the body of POST /authentication/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries an issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// UserRequest creates or replaces a user. PasswordHash carries the plaintext
// password; Password is accepted as an alias.
type UserRequest struct {
	Email        string `json:"email" validate:"required,email,max=254"`
	PasswordHash string `json:"passwordHash"`
	Password     string `json:"password"`
}

// Secret returns the supplied password, whichever field carried it.
func (r UserRequest) Secret() string {
	if r.PasswordHash != "" {
		return r.PasswordHash
	}
	return r.Password
}

// UserPatch partially updates a user.
type UserPatch struct {
	Email        *string `json:"email" validate:"omitempty,email,max=254"`
	PasswordHash *string `json:"passwordHash"`
	Password     *string `json:"password"`
}

// Secret returns the supplied password, if any.
func (r UserPatch) Secret() *string {
	if r.PasswordHash != nil {
		return r.PasswordHash
	}
	return r.Password
}

// UserResponse is the public view of a user. It has no credential field.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DogRequest creates or replaces a dog.
type DogRequest struct {
	OwnerID    string   `json:"ownerId" validate:"required,uuid"`
	Name       string   `json:"name" validate:"required,max=100"`
	Breed      string   `json:"breed" validate:"required,max=100"`
	Gender     string   `json:"gender" validate:"required,max=20"`
	Weight     *float64 `json:"weight,omitempty" validate:"omitempty,gte=0,lte=999.99"`
	Age        *string  `json:"age,omitempty" validate:"omitempty,max=50"`
	IsNeutered *bool    `json:"isNeutered,omitempty"`
	Behavior   *string  `json:"behavior,omitempty" validate:"omitempty,max=500"`
	Pedigree   *bool    `json:"pedigree,omitempty"`
}

// DogPatch partially updates a dog.
type DogPatch struct {
	OwnerID    *string  `json:"ownerId" validate:"omitempty,uuid"`
	Name       *string  `json:"name" validate:"omitempty,max=100"`
	Breed      *string  `json:"breed" validate:"omitempty,max=100"`
	Gender     *string  `json:"gender" validate:"omitempty,max=20"`
	Weight     *float64 `json:"weight" validate:"omitempty,gte=0,lte=999.99"`
	Age        *string  `json:"age" validate:"omitempty,max=50"`
	IsNeutered *bool    `json:"isNeutered"`
	Behavior   *string  `json:"behavior" validate:"omitempty,max=500"`
	Pedigree   *bool    `json:"pedigree"`
}

// DogResponse is the public view of a dog.
type DogResponse struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	Name       string    `json:"name"`
	Breed      string    `json:"breed"`
	Gender     string    `json:"gender"`
	Weight     *float64  `json:"weight,omitempty"`
	Age        *string   `json:"age,omitempty"`
	IsNeutered *bool     `json:"isNeutered,omitempty"`
	Behavior   *string   `json:"behavior,omitempty"`
	Pedigree   *bool     `json:"pedigree,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}
