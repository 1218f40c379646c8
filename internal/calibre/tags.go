package calibre

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// Tags returns one page of tags ordered by name, optionally narrowed by a
// diacritic-insensitive search on the tag name.
func (l *Library) Tags(page, size int, search string) (Page[Tag], error) {
	p := Page[Tag]{Entries: []Tag{}, Page: page}
	if size <= 0 {
		return p, fmt.Errorf("tags page: %w", ErrInvalidPageSize)
	}
	if !l.ok {
		return p, nil
	}

	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE " + foldMatch("t.name")
		args = append(args, search)
	}

	p.Pages = pageCount(l.countWhere("tags t", where, args...), size)

	rows, err := l.db.Query(`
		SELECT t.id, t.name, COUNT(btl.book)
		FROM tags t
		LEFT JOIN books_tags_link btl ON btl.tag = t.id`+where+`
		GROUP BY t.id, t.name
		ORDER BY t.name
		LIMIT ? OFFSET ?`, append(args, size, page*size)...)
	if err != nil {
		log.Printf("calibre tags query failed: %v", err)
		return p, nil
	}
	defer rows.Close()

	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.BookCount); err != nil {
			log.Printf("calibre tags scan failed: %v", err)
			return p, nil
		}
		p.Entries = append(p.Entries, t)
	}
	if err := rows.Err(); err != nil {
		log.Printf("calibre tags iteration failed: %v", err)
	}
	return p, nil
}

// TagList returns all tags ordered by name, without paging or book counts.
// Intended for filter dropdowns.
func (l *Library) TagList() []Tag {
	tags := []Tag{}
	if !l.ok {
		return tags
	}

	rows, err := l.db.Query("SELECT id, name FROM tags ORDER BY name")
	if err != nil {
		log.Printf("calibre tag list query failed: %v", err)
		return tags
	}
	defer rows.Close()

	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			log.Printf("calibre tag list scan failed: %v", err)
			return tags
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		log.Printf("calibre tag list iteration failed: %v", err)
	}
	return tags
}

// TagDetails returns one tag with its books ordered by sort title, or nil
// when the identifier does not resolve.
func (l *Library) TagDetails(id int64) (*TagDetails, error) {
	if !l.ok {
		return nil, nil
	}

	var details TagDetails
	err := l.db.QueryRow(`
		SELECT t.id, t.name,
		       (SELECT COUNT(*) FROM books_tags_link WHERE tag = t.id)
		FROM tags t WHERE t.id = ?`, id).
		Scan(&details.Tag.ID, &details.Tag.Name, &details.Tag.BookCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Printf("calibre tag lookup failed: %v", err)
		return nil, nil
	}

	details.Books = l.booksWhere(`
		JOIN books_tags_link btl ON btl.book = b.id
		WHERE btl.tag = ?
		ORDER BY b.sort`, id)
	return &details, nil
}
