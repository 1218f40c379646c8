// Command generate_demo creates a demo Calibre library and annex database
// with public domain books, for local development without a real library.
// Usage: go run cmd/generate_demo/main.go [-dir path/to/demo]
package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pmaren/bookannex/internal/annex"
	"github.com/pmaren/bookannex/internal/entities"
)

const defaultDemoDir = "./demo"

type demoBook struct {
	id       int64
	title    string
	sort     string
	pubdate  string
	author   int64
	series   int64
	seriesIx float64
	tags     []int64
	lang     int64
	comment  string
}

func main() {
	dir := flag.String("dir", defaultDemoDir, "directory for the demo library and annex")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	libraryPath := filepath.Join(*dir, "metadata.db")
	annexPath := filepath.Join(*dir, "bookannex.db")

	// Start fresh
	for _, path := range []string{libraryPath, annexPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove %s: %v", path, err)
		}
	}

	log.Printf("Generating demo library at %s...", libraryPath)
	generateLibrary(libraryPath)

	log.Printf("Generating demo annex at %s...", annexPath)
	generateAnnex(annexPath)

	log.Println("Demo data generated successfully!")
	log.Printf("Run with: LIBRARY_PATH=%s ANNEX_PATH=%s", libraryPath, annexPath)
}

func generateLibrary(path string) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Fatalf("Failed to create library database: %v", err)
	}
	defer db.Close()

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
		mustExec(db, stmt)
	}

	authors := map[int64][2]string{
		1: {"Marcus Aurelius", "Aurelius, Marcus"},
		2: {"Jane Austen", "Austen, Jane"},
		3: {"Jules Verne", "Verne, Jules"},
		4: {"Antoine de Saint-Exupéry", "Saint-Exupéry, Antoine de"},
	}
	for id, a := range authors {
		mustExec(db, "INSERT INTO authors (id, name, sort) VALUES (?, ?, ?)", id, a[0], a[1])
	}

	mustExec(db, "INSERT INTO series (id, name, sort) VALUES (1, 'Voyages extraordinaires', 'Voyages extraordinaires')")

	tags := map[int64]string{1: "philosophy", 2: "fiction", 3: "classic", 4: "adventure"}
	for id, name := range tags {
		mustExec(db, "INSERT INTO tags (id, name) VALUES (?, ?)", id, name)
	}

	langs := map[int64]string{1: "en", 2: "fr"}
	for id, code := range langs {
		mustExec(db, "INSERT INTO languages (id, lang_code) VALUES (?, ?)", id, code)
	}

	books := []demoBook{
		{
			id: 1, title: "Meditations", sort: "Meditations",
			pubdate: "0180-01-01", author: 1, tags: []int64{1, 3}, lang: 1,
			comment: "The private reflections of a Roman emperor.",
		},
		{
			id: 2, title: "Pride and Prejudice", sort: "Pride and Prejudice",
			pubdate: "1813-01-28", author: 2, tags: []int64{2, 3}, lang: 1,
			comment: "It is a truth universally acknowledged...",
		},
		{
			id: 3, title: "Vingt mille lieues sous les mers", sort: "Vingt mille lieues sous les mers",
			pubdate: "1870-06-20", author: 3, series: 1, seriesIx: 6, tags: []int64{2, 4}, lang: 2,
			comment: "Le capitaine Nemo et le Nautilus.",
		},
		{
			id: 4, title: "Le Petit Prince", sort: "Petit Prince, Le",
			pubdate: "1943-04-06", author: 4, tags: []int64{2}, lang: 2,
			comment: "On ne voit bien qu'avec le cœur.",
		},
	}

	for _, b := range books {
		mustExec(db, `INSERT INTO books (id, title, sort, timestamp, pubdate, last_modified, series_index, author_sort, uuid)
			VALUES (?, ?, ?, datetime('now'), ?, datetime('now'), ?, ?, lower(hex(randomblob(16))))`,
			b.id, b.title, b.sort, b.pubdate, max(b.seriesIx, 1.0), authors[b.author][1])
		mustExec(db, "INSERT INTO books_authors_link (book, author) VALUES (?, ?)", b.id, b.author)
		if b.series > 0 {
			mustExec(db, "INSERT INTO books_series_link (book, series) VALUES (?, ?)", b.id, b.series)
		}
		for _, tag := range b.tags {
			mustExec(db, "INSERT INTO books_tags_link (book, tag) VALUES (?, ?)", b.id, tag)
		}
		mustExec(db, "INSERT INTO books_languages_link (book, lang_code) VALUES (?, ?)", b.id, b.lang)
		mustExec(db, "INSERT INTO comments (book, text) VALUES (?, ?)", b.id, b.comment)
		mustExec(db, "INSERT INTO data (book, format, uncompressed_size, name) VALUES (?, 'EPUB', 512000, ?)", b.id, b.sort)
	}

	log.Printf("Saved %d books, %d authors, %d tags", len(books), len(authors), len(tags))
}

func generateAnnex(path string) {
	store, err := annex.Open(path)
	if err != nil {
		log.Fatalf("Failed to create annex database: %v", err)
	}
	defer store.Close()

	// A note and a link to show overlay data in the demo
	thing, err := store.EnsureThing(entities.KindBook, 1, "Meditations")
	if err != nil {
		log.Fatalf("Failed to create overlay row: %v", err)
	}
	if _, err := store.AttachNote(thing, "text/plain", "Read this one every winter."); err != nil {
		log.Fatalf("Failed to attach note: %v", err)
	}
	if _, err := store.AttachLink(thing, "Standard Ebooks", "https://standardebooks.org/ebooks/marcus-aurelius/meditations/george-long"); err != nil {
		log.Fatalf("Failed to attach link: %v", err)
	}

	if _, err := store.SaveIDTemplate("goodreads", "https://www.goodreads.com/book/show/%id%", "Goodreads"); err != nil {
		log.Fatalf("Failed to save ID template: %v", err)
	}

	if _, err := store.SaveConfig(map[string]string{"display_app_name": "BookAnnex Demo"}); err != nil {
		log.Fatalf("Failed to save config: %v", err)
	}
}

func mustExec(db *sql.DB, query string, args ...any) {
	if _, err := db.Exec(query, args...); err != nil {
		log.Fatalf("Failed to execute %q: %v", query, err)
	}
}
