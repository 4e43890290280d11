// Package limiter throttles sign-in attempts per (email, client address).
package limiter

import (
	"context"
	"crypto/sha256"
	"strings"
	"time"
)

// Limiter controls login attempts and temporary lockouts.
type Limiter interface {
	// Allow reports whether a login is currently allowed and, if not, how long to wait.
	Allow(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error)
	// Success clears the failure counter after a successful login.
	Success(ctx context.Context, email string, ipHash []byte) error
	// Failure records a failed attempt and reports whether the pair is now locked.
	Failure(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error)
}

// HashIP returns a stable digest of a client address so raw addresses are never stored.
func HashIP(ip string) []byte {
	h := sha256.Sum256([]byte(ip))
	return h[:]
}

// Key normalizes an email for use as a limiter key.
func Key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Nop never limits. It is used when no database is configured.
type Nop struct{}

var _ Limiter = Nop{}

func (Nop) Allow(context.Context, string, []byte) (bool, time.Duration, error) { return true, 0, nil }
func (Nop) Success(context.Context, string, []byte) error                       { return nil }
func (Nop) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	return false, 0, nil
}
