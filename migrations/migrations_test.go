package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFS_HasOrderedGooseFiles(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_init.sql", "00002_seed.sql"}, names)

	for _, n := range names {
		b, err := fs.ReadFile(FS, n)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(b), "-- +goose Up"), n)
		require.Contains(t, string(b), "-- +goose Down", n)
	}
}

func TestInit_CommentBoundsMatchDomain(t *testing.T) {
	b, err := fs.ReadFile(FS, "00001_init.sql")
	require.NoError(t, err)
	require.Contains(t, string(b), "BETWEEN 50 AND 300")
	require.Contains(t, string(b), "PRIMARY KEY (email, ip_hash)")
}
