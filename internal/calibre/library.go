// Package calibre provides read-only access to a Calibre metadata.db.
//
// The library database is owned by Calibre and never written by this
// application: connections are opened with mode=ro and every query degrades
// to empty results when the file is missing or not a Calibre database.
package calibre

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/mattn/go-sqlite3"

	"github.com/pmaren/bookannex/internal/entities"
	"github.com/pmaren/bookannex/internal/normalize"
)

// ErrInvalidPageSize is returned when a caller requests a page size of zero
// or less. This is a caller bug, not a data condition.
var ErrInvalidPageSize = errors.New("page size must be positive")

// Library reads a Calibre metadata.db. Construct with Open; check Ok before
// trusting results, although every query is safe to call regardless.
type Library struct {
	db     *sql.DB
	path   string
	folder normalize.Folder
	ok     bool
}

// Each Library registers its own driver so the fold() SQL function can be
// bound to the injected folder. Driver names must be process-unique.
var driverSeq atomic.Int64

func registerFoldDriver(folder normalize.Folder) string {
	name := fmt.Sprintf("sqlite3_fold_%d", driverSeq.Add(1))
	sql.Register(name, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", folder.Fold, true)
		},
	})
	return name
}

// Open opens the Calibre database at path read-only. A nil folder selects
// the default unicode folder. A missing or unusable file is not an error:
// the returned library reports Ok() == false and answers every query with
// empty results.
func Open(path string, folder normalize.Folder) (*Library, error) {
	if folder == nil {
		folder = normalize.Default()
	}

	driver := registerFoldDriver(folder)
	db, err := sql.Open(driver, "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open calibre database: %w", err)
	}

	lib := &Library{
		db:     db,
		path:   path,
		folder: folder,
	}
	lib.ok = lib.usable()
	if !lib.ok {
		log.Printf("Calibre library at %s is not usable, queries will return empty results", path)
	}
	return lib, nil
}

// usable checks that the file exists and carries the Calibre books table.
func (l *Library) usable() bool {
	if _, err := os.Stat(l.path); err != nil {
		return false
	}
	var n int
	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'books'`).Scan(&n)
	return err == nil && n > 0
}

// Ok reports whether the library database is usable. Setup flows use this
// to decide whether to show a configuration screen instead of content.
func (l *Library) Ok() bool {
	return l.ok
}

// Path returns the library database path.
func (l *Library) Path() string {
	return l.path
}

// Folder returns the injected text folder, so callers can fold terms the
// same way the library does.
func (l *Library) Folder() normalize.Folder {
	return l.folder
}

func (l *Library) Close() error {
	return l.db.Close()
}

// Count runs an ad-hoc aggregate query, e.g. for stats reporting. The query
// must select a single integer. Errors and an unusable library yield zero.
func (l *Library) Count(query string, args ...any) int64 {
	if !l.ok {
		return 0
	}
	var n int64
	if err := l.db.QueryRow(query, args...).Scan(&n); err != nil {
		log.Printf("calibre count query failed: %v", err)
		return 0
	}
	return n
}

// HasEntity reports whether the library still contains the entity behind an
// overlay reference. Used by the orphan sweep.
func (l *Library) HasEntity(kind entities.Kind, id int64) bool {
	if !l.ok {
		// An unreadable library must not trigger overlay deletions.
		return true
	}
	var table string
	switch kind {
	case entities.KindAuthor:
		table = "authors"
	case entities.KindBook:
		table = "books"
	case entities.KindSeries:
		table = "series"
	case entities.KindTag:
		table = "tags"
	default:
		return false
	}
	var n int
	err := l.db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE id = ?", id).Scan(&n)
	if err != nil {
		log.Printf("calibre existence check failed for %s %d: %v", kind, id, err)
		return true
	}
	return n > 0
}

// EntityName returns the display name of an entity, or "" when the entity or
// the library is gone. Books use the title column, everything else name.
func (l *Library) EntityName(kind entities.Kind, id int64) string {
	if !l.ok {
		return ""
	}
	var query string
	switch kind {
	case entities.KindAuthor:
		query = "SELECT name FROM authors WHERE id = ?"
	case entities.KindBook:
		query = "SELECT title FROM books WHERE id = ?"
	case entities.KindSeries:
		query = "SELECT name FROM series WHERE id = ?"
	case entities.KindTag:
		query = "SELECT name FROM tags WHERE id = ?"
	default:
		return ""
	}
	var name string
	err := l.db.QueryRow(query, id).Scan(&name)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("calibre name lookup failed for %s %d: %v", kind, id, err)
		}
		return ""
	}
	return name
}

// LanguageID resolves a language code (e.g. "en") to the library-internal
// identifier. Returns false when the library has no books in that language.
func (l *Library) LanguageID(code string) (int64, bool) {
	if !l.ok {
		return 0, false
	}
	var id int64
	err := l.db.QueryRow("SELECT id FROM languages WHERE lang_code = ?", code).Scan(&id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("calibre language lookup failed: %v", err)
		}
		return 0, false
	}
	return id, true
}

// TagID resolves a tag name to the library-internal identifier.
func (l *Library) TagID(name string) (int64, bool) {
	if !l.ok {
		return 0, false
	}
	var id int64
	err := l.db.QueryRow("SELECT id FROM tags WHERE name = ?", name).Scan(&id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("calibre tag lookup failed: %v", err)
		}
		return 0, false
	}
	return id, true
}

// Languages lists all languages used in the library, for filter UIs.
func (l *Library) Languages() []Language {
	langs := []Language{}
	if !l.ok {
		return langs
	}
	rows, err := l.db.Query("SELECT id, lang_code FROM languages ORDER BY lang_code")
	if err != nil {
		log.Printf("calibre languages query failed: %v", err)
		return langs
	}
	defer rows.Close()

	for rows.Next() {
		var lang Language
		if err := rows.Scan(&lang.ID, &lang.Code); err != nil {
			log.Printf("calibre languages scan failed: %v", err)
			return langs
		}
		langs = append(langs, lang)
	}
	if err := rows.Err(); err != nil {
		log.Printf("calibre languages iteration failed: %v", err)
	}
	return langs
}

// pageCount is ceil(total/size).
func pageCount(total, size int) int {
	return (total + size - 1) / size
}

// countWhere runs SELECT COUNT(*) with an optional where clause, absorbing
// errors into zero so browsing stays resilient.
func (l *Library) countWhere(from, where string, args ...any) int {
	var n int
	if err := l.db.QueryRow("SELECT COUNT(*) FROM "+from+where, args...).Scan(&n); err != nil {
		log.Printf("calibre count failed: %v", err)
		return 0
	}
	return n
}

// foldMatch builds a diacritic-insensitive substring predicate on column.
// Both sides go through the registered fold() function, which keeps the
// comparison symmetric with the folder used by the caller.
func foldMatch(column string) string {
	return "instr(fold(" + column + "), fold(?)) > 0"
}
