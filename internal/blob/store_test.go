package blob

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	assert.NoError(t, store.Write("user_abc.png", []byte("png-bytes")))

	data, err := store.Read("user_abc.png")
	assert.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	ok, err := store.Exists("user_abc.png")
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, store.Delete("user_abc.png"))
	ok, err = store.Exists("user_abc.png")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_WriteReplaces(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	assert.NoError(t, store.Write("auction_abc.jpg", []byte("old")))
	assert.NoError(t, store.Write("auction_abc.jpg", []byte("new")))

	data, err := store.Read("auction_abc.jpg")
	assert.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestFileStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	assert.NoError(t, store.Delete("never_written.png"))
}

func TestFileStore_StripsPathComponents(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	assert.NoError(t, err)

	// A name carrying directories lands in the root under its base name.
	assert.NoError(t, store.Write("../escape.png", []byte("x")))
	assert.FileExists(t, filepath.Join(root, "escape.png"))
}
