package calibre

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// customColumn is one row of Calibre's custom_columns table.
type customColumn struct {
	id         int64
	label      string // lookup key
	name       string // display name
	datatype   string
	isMultiple bool
	normalized bool
}

// CustomColumns returns the user-defined column values of one book, keyed by
// the column's display name. Multi-valued columns are joined into a single
// comma-separated value. Series-typed columns are not yet supported and are
// skipped.
func (l *Library) CustomColumns(bookID int64) (map[string]CustomColumnValue, error) {
	result := map[string]CustomColumnValue{}
	if !l.ok {
		return result, nil
	}

	rows, err := l.db.Query(
		"SELECT id, label, name, datatype, is_multiple, normalized FROM custom_columns")
	if err != nil {
		log.Printf("calibre custom columns query failed: %v", err)
		return result, nil
	}
	defer rows.Close()

	var columns []customColumn
	for rows.Next() {
		var c customColumn
		var isMultiple, normalized sql.NullInt64
		if err := rows.Scan(&c.id, &c.label, &c.name, &c.datatype, &isMultiple, &normalized); err != nil {
			log.Printf("calibre custom columns scan failed: %v", err)
			return result, nil
		}
		c.isMultiple = isMultiple.Int64 != 0
		c.normalized = normalized.Int64 != 0
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		log.Printf("calibre custom columns iteration failed: %v", err)
		return result, nil
	}

	for _, c := range columns {
		if c.datatype == "series" {
			// Series-like custom columns are not supported yet.
			continue
		}
		values := l.customColumnValues(c, bookID)
		if len(values) == 0 {
			continue
		}
		// Only multi-valued columns join; a single-valued column with
		// stray extra rows keeps just the first.
		value := values[0]
		if c.isMultiple {
			value = strings.Join(values, ", ")
		}
		result[c.name] = CustomColumnValue{
			Label: c.label,
			Value: value,
		}
	}
	return result, nil
}

// customColumnValues reads the values of one custom column for one book.
// Normalized columns keep their values in a separate table joined through a
// per-column link table; plain columns store the value on the book row.
func (l *Library) customColumnValues(c customColumn, bookID int64) []string {
	var query string
	if c.normalized {
		query = fmt.Sprintf(`
			SELECT CAST(v.value AS TEXT)
			FROM custom_column_%d v
			JOIN books_custom_column_%d_link lnk ON lnk.value = v.id
			WHERE lnk.book = ?`, c.id, c.id)
	} else {
		query = fmt.Sprintf(
			"SELECT CAST(value AS TEXT) FROM custom_column_%d WHERE book = ?", c.id)
	}

	rows, err := l.db.Query(query, bookID)
	if err != nil {
		log.Printf("calibre custom column %d query failed: %v", c.id, err)
		return nil
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			log.Printf("calibre custom column %d scan failed: %v", c.id, err)
			return values
		}
		if v.Valid {
			values = append(values, v.String)
		}
	}
	if err := rows.Err(); err != nil {
		log.Printf("calibre custom column %d iteration failed: %v", c.id, err)
	}
	return values
}
