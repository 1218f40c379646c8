package calibre

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// Series returns one page of series ordered by sort name, optionally
// narrowed by a diacritic-insensitive search on the series name.
func (l *Library) Series(page, size int, search string) (Page[Series], error) {
	p := Page[Series]{Entries: []Series{}, Page: page}
	if size <= 0 {
		return p, fmt.Errorf("series page: %w", ErrInvalidPageSize)
	}
	if !l.ok {
		return p, nil
	}

	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE " + foldMatch("s.name")
		args = append(args, search)
	}

	p.Pages = pageCount(l.countWhere("series s", where, args...), size)

	rows, err := l.db.Query(`
		SELECT s.id, s.name, s.sort, COUNT(bsl.book)
		FROM series s
		LEFT JOIN books_series_link bsl ON bsl.series = s.id`+where+`
		GROUP BY s.id, s.name, s.sort
		ORDER BY s.sort
		LIMIT ? OFFSET ?`, append(args, size, page*size)...)
	if err != nil {
		log.Printf("calibre series query failed: %v", err)
		return p, nil
	}
	defer rows.Close()

	for rows.Next() {
		var s Series
		var sort sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &sort, &s.BookCount); err != nil {
			log.Printf("calibre series scan failed: %v", err)
			return p, nil
		}
		s.Sort = sort.String
		p.Entries = append(p.Entries, s)
	}
	if err := rows.Err(); err != nil {
		log.Printf("calibre series iteration failed: %v", err)
	}
	return p, nil
}

// SeriesDetails returns one series with its books in series order, or nil
// when the identifier does not resolve.
func (l *Library) SeriesDetails(id int64) (*SeriesDetails, error) {
	if !l.ok {
		return nil, nil
	}

	var details SeriesDetails
	var sort sql.NullString
	err := l.db.QueryRow(`
		SELECT s.id, s.name, s.sort,
		       (SELECT COUNT(*) FROM books_series_link WHERE series = s.id)
		FROM series s WHERE s.id = ?`, id).
		Scan(&details.Series.ID, &details.Series.Name, &sort, &details.Series.BookCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Printf("calibre series lookup failed: %v", err)
		return nil, nil
	}
	details.Series.Sort = sort.String

	details.Books = l.booksWhere(`
		JOIN books_series_link bsl ON bsl.book = b.id
		WHERE bsl.series = ?
		ORDER BY b.series_index`, id)
	return &details, nil
}
