package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/dlc/token", wantErr: "invalid secret key"},
		{name: "traversal", key: "dlc/../../escape", wantErr: "invalid secret key"},
		{name: "trailing slash", key: "dlc/", wantErr: "invalid secret key"},
		{name: "backslash", key: `dlc\token`, wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), "dlc/token", "jwt-abc"))
	require.NoError(t, store.Put(context.Background(), "dlc/token", "jwt-def"))

	got, err := store.Get(context.Background(), "dlc/token")
	require.NoError(t, err)
	assert.Equal(t, "jwt-def", got)

	info, err := os.Stat(filepath.Join(root, "dlc", "token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMode), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(root, "dlc"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no staging files left behind")
}

func TestStoreGetTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dlc"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dlc", "jwt"), []byte("jwt-abc\n"), 0o600))

	got, err := NewStore(root).Get(context.Background(), "dlc/jwt")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", got)
}

func TestStoreGetMissingKeyReportsSecretNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Get(context.Background(), "dlc/jwt")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentAndPrunesNamespace(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), "dlc/token", "jwt-abc"))
	require.NoError(t, store.Delete(context.Background(), "dlc/token"))
	require.NoError(t, store.Delete(context.Background(), "dlc/token"))

	_, err := store.Get(context.Background(), "dlc/token")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	_, err = os.Stat(filepath.Join(root, "dlc"))
	assert.True(t, os.IsNotExist(err))
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore(t.TempDir()).Put(ctx, "dlc/token", "v")
	require.ErrorIs(t, err, context.Canceled)
}
