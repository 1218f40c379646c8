package calibre

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// bookColumns is the column list every book query selects, with books
// aliased as b.
const bookColumns = `b.id, b.title, b.sort, b.timestamp, b.pubdate,
	b.last_modified, b.series_index, b.author_sort, b.path, b.has_cover, b.uuid`

func scanBook(rows *sql.Rows) (Book, error) {
	var b Book
	var sort, timestamp, pubdate, lastModified, authorSort, path, uuid sql.NullString
	var hasCover sql.NullInt64
	err := rows.Scan(&b.ID, &b.Title, &sort, &timestamp, &pubdate,
		&lastModified, &b.SeriesIndex, &authorSort, &path, &hasCover, &uuid)
	if err != nil {
		return b, err
	}
	b.Sort = sort.String
	b.Timestamp = timestamp.String
	b.PubDate = pubdate.String
	b.LastModified = lastModified.String
	b.AuthorSort = authorSort.String
	b.Path = path.String
	b.HasCover = hasCover.Int64 != 0
	b.UUID = uuid.String
	return b, nil
}

// booksWhere runs a book query with the given tail (joins, where, order) and
// absorbs read errors into an empty slice.
func (l *Library) booksWhere(tail string, args ...any) []Book {
	books := []Book{}
	rows, err := l.db.Query("SELECT "+bookColumns+" FROM books b "+tail, args...)
	if err != nil {
		log.Printf("calibre books query failed: %v", err)
		return books
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			log.Printf("calibre books scan failed: %v", err)
			return books
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		log.Printf("calibre books iteration failed: %v", err)
	}
	return books
}

// Titles returns one page of books. The filter's language and tag
// restrictions are AND-ed when both are present; the search term matches the
// title diacritic-insensitively; the sort variant picks the ordering.
func (l *Library) Titles(page, size int, filter Filter) (Page[Book], error) {
	p := Page[Book]{Entries: []Book{}, Page: page}
	if size <= 0 {
		return p, fmt.Errorf("titles page: %w", ErrInvalidPageSize)
	}
	if !l.ok {
		return p, nil
	}

	where := ""
	args := []any{}
	and := func(clause string) {
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}
	if filter.LanguageID != 0 {
		and("EXISTS (SELECT 1 FROM books_languages_link bll WHERE bll.book = b.id AND bll.lang_code = ?)")
		args = append(args, filter.LanguageID)
	}
	if filter.TagID != 0 {
		and("EXISTS (SELECT 1 FROM books_tags_link btl WHERE btl.book = b.id AND btl.tag = ?)")
		args = append(args, filter.TagID)
	}
	if filter.Search != "" {
		and(foldMatch("b.title"))
		args = append(args, filter.Search)
	}

	p.Pages = pageCount(l.countWhere("books b", where, args...), size)

	p.Entries = l.booksWhere(
		where+filter.Sort.orderClause()+" LIMIT ? OFFSET ?",
		append(args, size, page*size)...)
	return p, nil
}

// TitleDetails returns one book with its authors, tags, series, languages,
// comment and formats, or nil when the identifier does not resolve.
func (l *Library) TitleDetails(id int64) (*BookDetails, error) {
	if !l.ok {
		return nil, nil
	}

	books := l.booksWhere("WHERE b.id = ?", id)
	if len(books) == 0 {
		return nil, nil
	}
	details := &BookDetails{
		Book:      books[0],
		Authors:   []Author{},
		Tags:      []Tag{},
		Series:    []Series{},
		Languages: []string{},
		Formats:   []Format{},
	}

	rows, err := l.db.Query(`
		SELECT a.id, a.name, a.sort FROM authors a
		JOIN books_authors_link bal ON bal.author = a.id
		WHERE bal.book = ? ORDER BY a.sort`, id)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var a Author
			var sort sql.NullString
			if err := rows.Scan(&a.ID, &a.Name, &sort); err != nil {
				break
			}
			a.Sort = sort.String
			details.Authors = append(details.Authors, a)
		}
	}

	tagRows, err := l.db.Query(`
		SELECT t.id, t.name FROM tags t
		JOIN books_tags_link btl ON btl.tag = t.id
		WHERE btl.book = ? ORDER BY t.name`, id)
	if err == nil {
		defer tagRows.Close()
		for tagRows.Next() {
			var t Tag
			if err := tagRows.Scan(&t.ID, &t.Name); err != nil {
				break
			}
			details.Tags = append(details.Tags, t)
		}
	}

	seriesRows, err := l.db.Query(`
		SELECT s.id, s.name, s.sort FROM series s
		JOIN books_series_link bsl ON bsl.series = s.id
		WHERE bsl.book = ?`, id)
	if err == nil {
		defer seriesRows.Close()
		for seriesRows.Next() {
			var s Series
			var sort sql.NullString
			if err := seriesRows.Scan(&s.ID, &s.Name, &sort); err != nil {
				break
			}
			s.Sort = sort.String
			details.Series = append(details.Series, s)
		}
	}

	langRows, err := l.db.Query(`
		SELECT l.lang_code FROM languages l
		JOIN books_languages_link bll ON bll.lang_code = l.id
		WHERE bll.book = ? ORDER BY bll.item_order`, id)
	if err == nil {
		defer langRows.Close()
		for langRows.Next() {
			var code string
			if err := langRows.Scan(&code); err != nil {
				break
			}
			details.Languages = append(details.Languages, code)
		}
	}

	var comment sql.NullString
	err = l.db.QueryRow("SELECT text FROM comments WHERE book = ?", id).Scan(&comment)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Printf("calibre comment lookup failed: %v", err)
	}
	details.Comment = comment.String

	formatRows, err := l.db.Query(`
		SELECT format, name, uncompressed_size FROM data
		WHERE book = ? ORDER BY format`, id)
	if err == nil {
		defer formatRows.Close()
		for formatRows.Next() {
			var f Format
			if err := formatRows.Scan(&f.Format, &f.Name, &f.Size); err != nil {
				break
			}
			details.Formats = append(details.Formats, f)
		}
	}

	return details, nil
}
