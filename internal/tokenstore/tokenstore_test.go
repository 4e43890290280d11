package tokenstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "u", ExpiresAt: jwt.NewNumericDate(exp)}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestDefaultDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got := DefaultDir(); got != filepath.Join(dir, "sixcities") {
		t.Fatalf("DefaultDir=%q", got)
	}
}

func TestFile_SaveLoadDrop(t *testing.T) {
	t.Parallel()

	f := New(filepath.Join(t.TempDir(), "cfg"))
	if _, err := f.Load(); err != ErrNoToken {
		t.Fatalf("want ErrNoToken on missing file, got %v", err)
	}
	if f.Token() != "" {
		t.Fatalf("empty store should yield empty token")
	}

	tok := signed(t, time.Now().Add(time.Hour))
	if err := f.Save(tok); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := f.Load()
	if err != nil || got != tok {
		t.Fatalf("Load: %q %v", got, err)
	}
	if f.Token() != tok {
		t.Fatalf("Token() should see the saved token")
	}
	if !strings.HasSuffix(f.Path(), "token.json") {
		t.Fatalf("Path=%q", f.Path())
	}

	if err := f.Drop(); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if f.Token() != "" {
		t.Fatalf("token must be gone after Drop")
	}
	if err := f.Drop(); err != nil {
		t.Fatalf("second Drop: %v", err)
	}
}

func TestFile_ExpiredToken(t *testing.T) {
	t.Parallel()

	f := New(t.TempDir())
	if err := f.Save(signed(t, time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := f.Load(); err != ErrNoToken {
		t.Fatalf("want ErrNoToken for expired token, got %v", err)
	}
}

func TestFile_CorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := New(dir)
	if err := os.WriteFile(f.Path(), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Load(); err == nil || err == ErrNoToken {
		t.Fatalf("want decode error, got %v", err)
	}
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	if got := Expiry(signed(t, exp)); !got.Equal(exp) {
		t.Fatalf("Expiry=%v want %v", got, exp)
	}
	if got := Expiry("not-a-jwt"); time.Until(got) <= 0 {
		t.Fatalf("fallback expiry must be in the future")
	}
}
