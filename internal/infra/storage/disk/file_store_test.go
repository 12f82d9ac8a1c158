package diskstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-board/internal/domain"
)

func TestDiskFileStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	upload := domain.PendingUpload{Filename: "cat.png", Size: 4, Data: strings.NewReader("meow")}
	stored, err := store.Save(ctx, "abc_cat.png", upload)
	require.NoError(t, err)
	assert.Equal(t, "abc_cat.png", stored.Name)
	assert.Equal(t, int64(4), stored.Size)

	content, err := os.ReadFile(filepath.Join(dir, "abc_cat.png"))
	require.NoError(t, err)
	assert.Equal(t, "meow", string(content))

	// No temp file left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, store.Remove(ctx, "abc_cat.png"))
	_, err = os.Stat(filepath.Join(dir, "abc_cat.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskFileStore_Save_RefusesUnsafeNames(t *testing.T) {
	store, err := NewDiskFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", "../escape.png", "a/b.png", `a\b.png`} {
		_, err := store.Save(ctx, name, domain.PendingUpload{Data: strings.NewReader("x")})
		assert.Error(t, err, name)
	}
}

func TestDiskFileStore_Remove_MissingIsNoError(t *testing.T) {
	store, err := NewDiskFileStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Remove(context.Background(), "never-written.png"))
}

func TestDiskFileStore_ListOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Save(ctx, "old.png", domain.PendingUpload{Data: strings.NewReader("x")})
	require.NoError(t, err)

	// Against a future cutoff the file qualifies; against a past one it
	// does not.
	names, err := store.ListOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"old.png"}, names)

	names, err = store.ListOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDiskFileStore_ListOlderThan_SkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".upload-123"), []byte("partial"), 0o644))

	names, err := store.ListOlderThan(context.Background(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, names)
}
