// Package tokenstore persists the access token of the CLI between runs.
package tokenstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultTTL is assumed when the token carries no exp claim.
const defaultTTL = 15 * time.Minute

// ErrNoToken means no usable token is stored (missing or expired).
var ErrNoToken = errors.New("no valid token (login required)")

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// File keeps the token in <dir>/token.json.
type File struct {
	dir string

	mu     sync.Mutex
	cached string
	loaded bool
}

// New constructs a file token store rooted at dir.
func New(dir string) *File { return &File{dir: dir} }

// DefaultDir returns $XDG_CONFIG_HOME/sixcities or ~/.config/sixcities.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "sixcities")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sixcities")
}

// Path is the token file location.
func (f *File) Path() string { return filepath.Join(f.dir, "token.json") }

// Save stores tok with the expiry read from its exp claim.
func (f *File) Save(tok string) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(tokenFile{AccessToken: tok, ExpiresAt: Expiry(tok)}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.Path(), b, 0o600); err != nil {
		return err
	}
	f.mu.Lock()
	f.cached, f.loaded = tok, true
	f.mu.Unlock()
	return nil
}

// Load returns the stored token or ErrNoToken.
func (f *File) Load() (string, error) {
	b, err := os.ReadFile(f.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", ErrNoToken
	}
	return tf.AccessToken, nil
}

// Drop removes the stored token.
func (f *File) Drop() error {
	f.mu.Lock()
	f.cached, f.loaded = "", true
	f.mu.Unlock()
	if err := os.Remove(f.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Token implements api.TokenSource. Errors read as "no token".
func (f *File) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.loaded {
		f.cached, _ = f.Load()
		f.loaded = true
	}
	return f.cached
}

// Expiry parses exp from a JWT without verifying it. Unparseable tokens get defaultTTL.
func Expiry(tok string) time.Time {
	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser().ParseUnverified(tok, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Now().Add(defaultTTL)
	}
	return claims.ExpiresAt.Time
}
