package calibre

// Page is one slice of a paginated query. Pages is ceil(total/pageSize);
// requesting a page at or past Pages yields empty Entries with the requested
// Page echoed back.
type Page[T any] struct {
	Entries []T `json:"entries"`
	Page    int `json:"page"`
	Pages   int `json:"pages"`
}

// Author is a read-only snapshot of a Calibre author row.
type Author struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Sort      string `json:"sort"`
	BookCount int    `json:"book_count"`
}

// Series is a read-only snapshot of a Calibre series row.
type Series struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Sort      string `json:"sort"`
	BookCount int    `json:"book_count"`
}

// Tag is a read-only snapshot of a Calibre tag row.
type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BookCount int    `json:"book_count"`
}

// Language is one entry of the library's languages table. Code is an ISO
// language code such as "en".
type Language struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

// Book is a read-only snapshot of a Calibre book row. Date fields keep
// Calibre's textual timestamp format.
type Book struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Sort         string  `json:"sort"`
	Timestamp    string  `json:"timestamp"`     // ingestion time
	PubDate      string  `json:"pubdate"`       // publication date
	LastModified string  `json:"last_modified"`
	SeriesIndex  float64 `json:"series_index"`
	AuthorSort   string  `json:"author_sort"`
	Path         string  `json:"path"`
	HasCover     bool    `json:"has_cover"`
	UUID         string  `json:"uuid"`
}

// Format is one stored file of a book.
type Format struct {
	Format string `json:"format"` // e.g. "EPUB"
	Name   string `json:"name"`   // filename without extension
	Size   int64  `json:"size"`   // uncompressed size in bytes
}

// BookDetails is a book with its related collections resolved.
type BookDetails struct {
	Book      Book     `json:"book"`
	Authors   []Author `json:"authors"`
	Tags      []Tag    `json:"tags"`
	Series    []Series `json:"series"`
	Languages []string `json:"languages"`
	Comment   string   `json:"comment"`
	Formats   []Format `json:"formats"`
}

// AuthorDetails is an author with their books.
type AuthorDetails struct {
	Author Author `json:"author"`
	Books  []Book `json:"books"`
}

// SeriesDetails is a series with its books in series order.
type SeriesDetails struct {
	Series Series `json:"series"`
	Books  []Book `json:"books"`
}

// TagDetails is a tag with its books.
type TagDetails struct {
	Tag   Tag    `json:"tag"`
	Books []Book `json:"books"`
}

// TitleSort selects the ordering of a titles slice. The three date-based
// orders are descending so "most recent" pages stay cheap.
type TitleSort int

const (
	SortByTitle        TitleSort = iota // sort title, ascending
	SortByTimestamp                     // ingestion time, newest first
	SortByPubDate                       // publication date, newest first
	SortByLastModified                  // last modified, newest first
)

// orderClause returns the ORDER BY fragment for a titles query with books
// aliased as b.
func (s TitleSort) orderClause() string {
	switch s {
	case SortByTimestamp:
		return " ORDER BY b.timestamp DESC"
	case SortByPubDate:
		return " ORDER BY b.pubdate DESC"
	case SortByLastModified:
		return " ORDER BY b.last_modified DESC"
	default:
		return " ORDER BY b.sort"
	}
}

// Filter narrows a titles slice. Zero values mean "no restriction"; language
// and tag are AND-ed when both are set. Resolve human-readable labels to IDs
// with Library.LanguageID and Library.TagID first.
type Filter struct {
	LanguageID int64
	TagID      int64
	Search     string
	Sort       TitleSort
}

// CustomColumnValue is one user-defined column of a book, ready for display.
type CustomColumnValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
