// Package limiter throttles failed logins per (email, client ip).
package limiter

import (
	"context"
	"crypto/sha256"
	"time"
)

// Limiter controls login attempts and temporary lockouts.
type Limiter interface {
	// Allow reports whether login is currently allowed and optional retry-after.
	Allow(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error)
	// Success resets counters after a successful login.
	Success(ctx context.Context, email string, ipHash []byte) error
	// Failure records a failed attempt; reports true when it places a block.
	Failure(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error)
}

// Settings configures the failure window and lockout.
type Settings struct {
	MaxFails int           // failures inside Window that trigger a block
	Window   time.Duration // failures older than this are forgotten
	BlockFor time.Duration
}

// DefaultSettings are used when config leaves the limiter unset.
var DefaultSettings = Settings{MaxFails: 5, Window: 15 * time.Minute, BlockFor: 15 * time.Minute}

// HashIP returns a stable hash for an IP string to avoid storing raw addresses.
func HashIP(ip string) []byte {
	h := sha256.Sum256([]byte(ip))
	return h[:]
}
