package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tableschema/pkg/storage"
)

func setupLocal(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "exports"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exports", "people.csv"), []byte("Name\nAnn\n"), 0644))

	s, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return s, dir
}

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("empty base dir", func(t *testing.T) {
		t.Parallel()
		_, err := storage.NewLocalStorage("")
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})

	t.Run("missing base dir", func(t *testing.T) {
		t.Parallel()
		_, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, storage.ErrDirectoryNotFound)
	})

	t.Run("base dir is a file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "file.csv")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		_, err := storage.NewLocalStorage(path)
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})

	t.Run("resolves absolute path", func(t *testing.T) {
		t.Parallel()
		s, dir := setupLocal(t)
		assert.True(t, filepath.IsAbs(s.BaseDir()))
		assert.Equal(t, filepath.Clean(dir), s.BaseDir())
	})
}

func TestLocalStorage_Open(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()
		s, _ := setupLocal(t)
		rc, err := s.Open(ctx, "exports/people.csv")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "Name\nAnn\n", string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		s, _ := setupLocal(t)
		_, err := s.Open(ctx, "exports/other.csv")
		assert.ErrorIs(t, err, storage.ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		s, _ := setupLocal(t)
		_, err := s.Open(ctx, "exports")
		assert.ErrorIs(t, err, storage.ErrIsDirectory)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		s, _ := setupLocal(t)
		_, err := s.Open(ctx, "../../etc/passwd")
		assert.ErrorIs(t, err, storage.ErrInvalidPath)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		s, _ := setupLocal(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.Open(cctx, "exports/people.csv")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalStorage_Exists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := setupLocal(t)

	assert.True(t, s.Exists(ctx, "exports/people.csv"))
	assert.True(t, s.Exists(ctx, "exports"))
	assert.False(t, s.Exists(ctx, "exports/other.csv"))
	assert.False(t, s.Exists(ctx, "../outside"))
}
