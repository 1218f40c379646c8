package http

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pmaren/bookannex/internal/annex"
	"github.com/pmaren/bookannex/internal/calibre"
	"github.com/pmaren/bookannex/internal/thumbs"
)

// newTestLibrary builds a throwaway Calibre metadata.db with a couple of
// books and opens it read-only.
func newTestLibrary(t *testing.T) *calibre.Library {
	t.Helper()

	path := filepath.Join(t.TempDir(), "metadata.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE books (
			id INTEGER PRIMARY KEY, title TEXT, sort TEXT,
			timestamp TEXT, pubdate TEXT, last_modified TEXT,
			series_index REAL DEFAULT 1.0, author_sort TEXT,
			path TEXT DEFAULT '', has_cover INTEGER DEFAULT 0, uuid TEXT DEFAULT '')`,
		`CREATE TABLE authors (id INTEGER PRIMARY KEY, name TEXT, sort TEXT)`,
		`CREATE TABLE series (id INTEGER PRIMARY KEY, name TEXT, sort TEXT)`,
		`CREATE TABLE tags (id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE TABLE languages (id INTEGER PRIMARY KEY, lang_code TEXT)`,
		`CREATE TABLE books_authors_link (id INTEGER PRIMARY KEY, book INTEGER, author INTEGER)`,
		`CREATE TABLE books_series_link (id INTEGER PRIMARY KEY, book INTEGER, series INTEGER)`,
		`CREATE TABLE books_tags_link (id INTEGER PRIMARY KEY, book INTEGER, tag INTEGER)`,
		`CREATE TABLE books_languages_link (id INTEGER PRIMARY KEY, book INTEGER, lang_code INTEGER, item_order INTEGER DEFAULT 0)`,
		`CREATE TABLE comments (id INTEGER PRIMARY KEY, book INTEGER, text TEXT)`,
		`CREATE TABLE data (id INTEGER PRIMARY KEY, book INTEGER, format TEXT, uncompressed_size INTEGER, name TEXT)`,
		`CREATE TABLE custom_columns (id INTEGER PRIMARY KEY, label TEXT, name TEXT, datatype TEXT, is_multiple BOOL DEFAULT 0, normalized BOOL DEFAULT 0)`,
	}
	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	seed := []string{
		`INSERT INTO authors (id, name, sort) VALUES (1, 'Jane Austen', 'Austen, Jane')`,
		`INSERT INTO authors (id, name, sort) VALUES (2, 'Herta Müller', 'Müller, Herta')`,
		`INSERT INTO books (id, title, sort, timestamp, pubdate, last_modified)
			VALUES (1, 'Emma', 'Emma', '2024-01-01', '1815-12-23', '2024-01-01')`,
		`INSERT INTO books (id, title, sort, timestamp, pubdate, last_modified)
			VALUES (2, 'Atemschaukel', 'Atemschaukel', '2024-02-01', '2009-08-17', '2024-02-01')`,
		`INSERT INTO books_authors_link (book, author) VALUES (1, 1)`,
		`INSERT INTO books_authors_link (book, author) VALUES (2, 2)`,
		`INSERT INTO tags (id, name) VALUES (1, 'classic')`,
		`INSERT INTO books_tags_link (book, tag) VALUES (1, 1)`,
		`INSERT INTO languages (id, lang_code) VALUES (1, 'en')`,
		`INSERT INTO books_languages_link (book, lang_code) VALUES (1, 1)`,
	}
	for _, stmt := range seed {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	lib, err := calibre.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

func newTestStore(t *testing.T) *annex.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "annex.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store, err := annex.New(db)
	require.NoError(t, err)
	store.SetBcryptCost(bcrypt.MinCost)
	t.Cleanup(func() { store.Close() })
	return store
}

// newTestRouter wires a full router against throwaway databases.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	thumbStore, err := thumbs.New(t.TempDir())
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		Library:         newTestLibrary(t),
		Store:           newTestStore(t),
		Thumbs:          thumbStore,
		DefaultPageSize: 30,
		Version:         "test",
	})
}
