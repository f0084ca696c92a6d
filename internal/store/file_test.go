package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "sareestage-backend/pkg/errors"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile", "local.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := s.Get(GuestIDKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(GuestIDKey, "guest_abc"))

	value, ok, err := s.Get(GuestIDKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "guest_abc", value)

	// A second store over the same file sees the persisted state.
	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	value, ok, err = reopened.Get(GuestIDKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "guest_abc", value)
}

func TestFileStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set(MockUserKey, "session-token"))
	require.NoError(t, s.Delete(MockUserKey))

	_, ok, err := s.Get(MockUserKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStoreCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = s.Get(GuestIDKey)
	require.Error(t, err)
	require.True(t, apperrors.IsErrorType(err, apperrors.ErrPersistence))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Set("k", "v"))
	value, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", value)

	require.NoError(t, s.Delete("k"))
	_, ok, err = s.Get("k")
	require.NoError(t, err)
	require.False(t, ok)
}
