package thumbs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmaren/bookannex/internal/entities"
)

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "thumbs")

	store, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRelPath(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "thumb_author_10.png", store.RelPath(entities.KindAuthor, 10))
	assert.Equal(t, "thumb_book_3.png", store.RelPath(entities.KindBook, 3))
}

func TestWrite_Overwrites(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	rel := store.RelPath(entities.KindSeries, 7)
	require.NoError(t, store.Write(rel, []byte("first")))
	require.NoError(t, store.Write(rel, []byte("second")))

	data, err := os.ReadFile(store.AbsPath(rel))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestExistsAndDelete(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	rel := store.RelPath(entities.KindBook, 1)
	assert.False(t, store.Exists(rel))

	require.NoError(t, os.WriteFile(store.AbsPath(rel), []byte("png"), 0644))
	assert.True(t, store.Exists(rel))

	require.NoError(t, store.Delete(rel))
	assert.False(t, store.Exists(rel))

	// Deleting a missing file is fine.
	require.NoError(t, store.Delete(rel))
}
