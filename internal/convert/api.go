// Package convert maps domain models to and from HTTP wire types.
package convert

import (
	"fmt"

	"github.com/and161185/dogial/internal/api"
	model "github.com/and161185/dogial/internal/model"
	u "github.com/gofrs/uuid/v5"
)

// --- users (server -> client) ---

// ToUserResponse drops credentials from a user.
func ToUserResponse(m model.User) api.UserResponse {
	return api.UserResponse{
		ID:        m.ID.String(),
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// --- users (client -> server) ---

// FromUserRequest converts a full replacement body into an update.
func FromUserRequest(r api.UserRequest) model.UserUpdate {
	email := r.Email
	secret := r.Secret()
	upd := model.UserUpdate{Email: &email}
	if secret != "" {
		upd.Password = &secret
	}
	return upd
}

// FromUserPatch converts a partial body into an update.
func FromUserPatch(r api.UserPatch) model.UserUpdate {
	return model.UserUpdate{Email: r.Email, Password: r.Secret()}
}

// --- tokens ---

// ToLoginResponse converts issued tokens to the login body.
func ToLoginResponse(t model.Tokens) api.LoginResponse {
	typ := t.TokenType
	if typ == "" {
		typ = model.TokenTypeBearer
	}
	return api.LoginResponse{AccessToken: t.AccessToken, TokenType: typ}
}

// --- dogs ---

// FromDogRequest converts a create/replace body to domain input.
func FromDogRequest(r api.DogRequest) (model.DogInput, error) {
	owner, err := u.FromString(r.OwnerID)
	if err != nil {
		return model.DogInput{}, fmt.Errorf("invalid ownerId: %w", err)
	}
	return model.DogInput{
		OwnerID:    owner,
		Name:       r.Name,
		Breed:      r.Breed,
		Gender:     r.Gender,
		Weight:     r.Weight,
		Age:        r.Age,
		IsNeutered: r.IsNeutered,
		Behavior:   r.Behavior,
		Pedigree:   r.Pedigree,
	}, nil
}

// FromDogPatch converts a partial body to a domain patch.
func FromDogPatch(r api.DogPatch) (model.DogPatch, error) {
	p := model.DogPatch{
		Name:       r.Name,
		Breed:      r.Breed,
		Gender:     r.Gender,
		Weight:     r.Weight,
		Age:        r.Age,
		IsNeutered: r.IsNeutered,
		Behavior:   r.Behavior,
		Pedigree:   r.Pedigree,
	}
	if r.OwnerID != nil {
		owner, err := u.FromString(*r.OwnerID)
		if err != nil {
			return model.DogPatch{}, fmt.Errorf("invalid ownerId: %w", err)
		}
		p.OwnerID = &owner
	}
	return p, nil
}

// ToDogResponse converts a domain dog to its wire form.
func ToDogResponse(d model.Dog) api.DogResponse {
	return api.DogResponse{
		ID:         d.ID.String(),
		OwnerID:    d.OwnerID.String(),
		Name:       d.Name,
		Breed:      d.Breed,
		Gender:     d.Gender,
		Weight:     d.Weight,
		Age:        d.Age,
		IsNeutered: d.IsNeutered,
		Behavior:   d.Behavior,
		Pedigree:   d.Pedigree,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDogResponses converts a slice of dogs; never returns nil.
func ToDogResponses(ds []model.Dog) []api.DogResponse {
	out := make([]api.DogResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, ToDogResponse(d))
	}
	return out
}
