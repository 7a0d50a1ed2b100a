// Package token issues and validates HS256 access tokens.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/dogial/internal/errs"
	"github.com/and161185/dogial/internal/model"
)

// ErrSigningKey is returned by Issue when no signing key is configured.
var ErrSigningKey = errors.New("token: empty signing key")

// leeway tolerates small clock skew between issuer and verifier.
const leeway = 30 * time.Second

// Claims is the JWT payload: registered claims plus the caller's roles.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and parses access tokens with a process-wide key.
type Issuer struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewIssuer constructs an Issuer. The key is copied.
func NewIssuer(key []byte, ttl time.Duration, issuer string) *Issuer {
	return &Issuer{
		key:    append([]byte(nil), key...),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue creates a signed token for subject carrying roles.
func (i *Issuer) Issue(subject string, roles []string) (model.Tokens, error) {
	if len(i.key) == 0 {
		return model.Tokens{}, ErrSigningKey
	}
	now := i.now()
	exp := now.Add(i.ttl)
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return model.Tokens{}, fmt.Errorf("token: sign: %w", err)
	}
	return model.Tokens{AccessToken: signed, TokenType: model.TokenTypeBearer, ExpiresAt: exp}, nil
}

// Parse verifies raw (HS256 only, signature, exp/nbf/iat, issuer, subject) and returns its principal.
// Every failure wraps errs.ErrUnauthorized.
func (i *Issuer) Parse(raw string) (model.Principal, error) {
	if len(i.key) == 0 {
		return model.Principal{}, fmt.Errorf("%w: %w", errs.ErrUnauthorized, ErrSigningKey)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.key, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return model.Principal{}, fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return model.Principal{}, fmt.Errorf("%w: empty subject", errs.ErrUnauthorized)
	}
	return model.Principal{Subject: claims.Subject, Roles: claims.Roles}, nil
}
