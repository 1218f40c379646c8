package calibre

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// Authors returns one page of authors ordered by sort name, optionally
// narrowed by a diacritic-insensitive search on the author name.
func (l *Library) Authors(page, size int, search string) (Page[Author], error) {
	p := Page[Author]{Entries: []Author{}, Page: page}
	if size <= 0 {
		return p, fmt.Errorf("authors page: %w", ErrInvalidPageSize)
	}
	if !l.ok {
		return p, nil
	}

	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE " + foldMatch("a.name")
		args = append(args, search)
	}

	p.Pages = pageCount(l.countWhere("authors a", where, args...), size)

	rows, err := l.db.Query(`
		SELECT a.id, a.name, a.sort, COUNT(bal.book)
		FROM authors a
		LEFT JOIN books_authors_link bal ON bal.author = a.id`+where+`
		GROUP BY a.id, a.name, a.sort
		ORDER BY a.sort
		LIMIT ? OFFSET ?`, append(args, size, page*size)...)
	if err != nil {
		log.Printf("calibre authors query failed: %v", err)
		return p, nil
	}
	defer rows.Close()

	for rows.Next() {
		var a Author
		var sort sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &sort, &a.BookCount); err != nil {
			log.Printf("calibre authors scan failed: %v", err)
			return p, nil
		}
		a.Sort = sort.String
		p.Entries = append(p.Entries, a)
	}
	if err := rows.Err(); err != nil {
		log.Printf("calibre authors iteration failed: %v", err)
	}
	return p, nil
}

// AuthorDetails returns one author with their books ordered by sort title,
// or nil when the identifier does not resolve.
func (l *Library) AuthorDetails(id int64) (*AuthorDetails, error) {
	if !l.ok {
		return nil, nil
	}

	var details AuthorDetails
	var sort sql.NullString
	err := l.db.QueryRow(`
		SELECT a.id, a.name, a.sort,
		       (SELECT COUNT(*) FROM books_authors_link WHERE author = a.id)
		FROM authors a WHERE a.id = ?`, id).
		Scan(&details.Author.ID, &details.Author.Name, &sort, &details.Author.BookCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Printf("calibre author lookup failed: %v", err)
		return nil, nil
	}
	details.Author.Sort = sort.String

	details.Books = l.booksWhere(`
		JOIN books_authors_link bal ON bal.book = b.id
		WHERE bal.author = ?
		ORDER BY b.sort`, id)
	return &details, nil
}
