package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetStore_StoreAndLoad(t *testing.T) {
	store, err := NewAssetStore(t.TempDir())
	require.NoError(t, err)

	meta := NewAssetMetadata("akina-zzz", "PNG")
	meta.Width, meta.Height = 16, 8
	assert.Equal(t, "png", meta.Format)
	assert.Equal(t, "image/png", meta.ContentType)

	require.NoError(t, store.Store(meta, bytes.NewReader([]byte("fake-png"))))
	assert.Equal(t, int64(8), meta.FileSize)

	loaded, err := store.Load("akina-zzz", meta.ID)
	require.NoError(t, err)
	assert.Equal(t, meta.Width, loaded.Width)
	assert.Equal(t, meta.FileSize, loaded.FileSize)

	data, err := store.ReadImage(loaded)
	require.NoError(t, err)
	assert.Equal(t, "fake-png", string(data))

	list, err := store.List("akina-zzz")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, meta.ID, list[0].ID)

	require.NoError(t, store.Delete(meta))
	list, err = store.List("akina-zzz")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestContentTypeForFormat(t *testing.T) {
	assert.Equal(t, "image/jpeg", ContentTypeForFormat("jpg"))
	assert.Equal(t, "image/jpeg", ContentTypeForFormat("JPEG"))
	assert.Equal(t, "image/webp", ContentTypeForFormat("webp"))
	assert.Equal(t, "image/svg+xml", ContentTypeForFormat("svg"))
	assert.Equal(t, "application/octet-stream", ContentTypeForFormat("bmp"))
}
