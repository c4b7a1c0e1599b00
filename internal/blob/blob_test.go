package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "Receipt.PDF", strings.NewReader("proof bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".pdf"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "proof bytes", string(data))

	other, err := store.Save(context.Background(), "Receipt.PDF", strings.NewReader("again"))
	require.NoError(t, err)
	assert.NotEqual(t, ref, other)
}

func TestDiskStore_CancelledContext(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleanExt(t *testing.T) {
	assert.Equal(t, ".png", cleanExt("photo.PNG"))
	assert.Equal(t, "", cleanExt("noext"))
	assert.Equal(t, "", cleanExt("weird.extension-too-long"))
	assert.Equal(t, ".jpg", cleanExt("../../etc/x.jpg"))
}

func TestDiskStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := store.Save(ctx, "bill.png", strings.NewReader("png"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, ref))
	assert.Error(t, store.Delete(ctx, "/etc/passwd"))
	assert.Error(t, store.Delete(ctx, "/uploads/../x"))
}
