package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	config := viper.New()
	config.Set("session.path", sessionPath)

	store, err := NewStore(config, nil)
	require.NoError(t, err)
	return store, sessionPath
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	require.NoError(t, store.Put(context.Background(), "uid-42"))

	id, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("uid-42"), id)

	require.NoError(t, store.Put(context.Background(), "uid-43"))
	id, err = store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("uid-43"), id)
}

func TestStoreGetBeforePutReturnsNotFound(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreDeleteErasesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	require.NoError(t, store.Put(context.Background(), "uid-42"))

	require.NoError(t, store.Delete(context.Background()))
	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)

	require.NoError(t, store.Delete(context.Background()))
}

func TestStoreRejectsEmptyUserID(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	require.Error(t, store.Put(context.Background(), ""))
}

func TestStoreWritesRestrictedFileMode(t *testing.T) {
	t.Parallel()

	store, sessionPath := newTestStore(t)
	require.NoError(t, store.Put(context.Background(), "uid-42"))

	info, err := os.Stat(sessionPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreRejectsUnsupportedVersion(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(sessionPath, []byte("version = 99\n"), 0o600))

	config := viper.New()
	config.Set("session.path", sessionPath)
	store, err := NewStore(config, nil)
	require.NoError(t, err)

	_, err = store.Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, store.Put(ctx, "uid-42"))
}
