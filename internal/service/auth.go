// Package service contains application services for authentication, users and dogs.
package service

import (
	"context"
	"errors"
	"strings"

	pkgcrypto "github.com/and161185/dogial/internal/crypto"
	"github.com/and161185/dogial/internal/errs"
	"github.com/and161185/dogial/internal/limiter"
	"github.com/and161185/dogial/internal/model"
	"github.com/and161185/dogial/internal/repository"
	"go.uber.org/zap"
)

// AuthService exchanges credentials for an access token.
type AuthService interface {
	// Login verifies the credentials and issues a bearer token, rate limited by (email, ip).
	Login(ctx context.Context, email, password, ip string) (model.Tokens, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(subject string, roles []string) (model.Tokens, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens TokenIssuer
	lim    limiter.Limiter
	log    *zap.Logger
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, lim limiter.Limiter, log *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim, log: log}
}

// Login authenticates with rate limiting by (email, ip).
// Unknown email, wrong password, lookup and signing failures all surface as
// errs.ErrUnauthorized; a lockout surfaces as errs.ErrRateLimited.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (model.Tokens, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.Tokens{}, errs.ErrUnauthorized
	}
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		s.log.Error("limiter allow", zap.Error(err))
		return model.Tokens{}, errs.ErrUnauthorized
	}
	if !allowed {
		return model.Tokens{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			s.log.Error("user lookup", zap.Error(err))
		}
		// same cost as a real check so absent accounts are not observable by timing
		pkgcrypto.VerifyPassword(password, pkgcrypto.DummyDigest())
		return model.Tokens{}, s.failure(ctx, email, ipHash)
	}
	if !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		return model.Tokens{}, s.failure(ctx, email, ipHash)
	}

	tok, err := s.tokens.Issue(u.Email, []string{model.RoleUser})
	if err != nil {
		s.log.Error("issue token", zap.Error(err))
		return model.Tokens{}, errs.ErrUnauthorized
	}

	if err := s.lim.Success(ctx, email, ipHash); err != nil {
		s.log.Warn("limiter reset", zap.Error(err))
	}
	return tok, nil
}

// failure records a failed attempt and picks the error the caller sees.
func (s *AuthServiceImpl) failure(ctx context.Context, email string, ipHash []byte) error {
	blocked, _, err := s.lim.Failure(ctx, email, ipHash)
	if err != nil {
		s.log.Warn("limiter failure", zap.Error(err))
		return errs.ErrUnauthorized
	}
	if blocked {
		return errs.ErrRateLimited
	}
	return errs.ErrUnauthorized
}
