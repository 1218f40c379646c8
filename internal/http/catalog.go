package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmaren/bookannex/internal/calibre"
)

// CatalogController serves read-only views of the Calibre library.
type CatalogController struct {
	library         *calibre.Library
	defaultPageSize int
}

func NewCatalogController(library *calibre.Library, defaultPageSize int) *CatalogController {
	return &CatalogController{library: library, defaultPageSize: defaultPageSize}
}

// respondPage writes a paginated result or maps the page-size error to 400.
func respondPage[T any](c *gin.Context, page calibre.Page[T], err error) {
	if err != nil {
		if errors.Is(err, calibre.ErrInvalidPageSize) {
			respondBadRequest(c, "page_size must be positive")
			return
		}
		respondInternalError(c, err, "catalog query")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetAuthors returns one page of authors
// GET /authors?page=&page_size=&search=
func (cc *CatalogController) GetAuthors(c *gin.Context) {
	page, size, ok := parsePaging(c, cc.defaultPageSize)
	if !ok {
		return
	}
	result, err := cc.library.Authors(page, size, c.Query("search"))
	respondPage(c, result, err)
}

// GetAuthor returns one author with their books
// GET /authors/:id
func (cc *CatalogController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	details, err := cc.library.AuthorDetails(id)
	if err != nil {
		respondInternalError(c, err, "author details")
		return
	}
	if details == nil {
		respondNotFound(c, "author")
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetBooks returns one page of books, optionally filtered
// GET /books?page=&page_size=&search=&lang=&tag=&sort=
func (cc *CatalogController) GetBooks(c *gin.Context) {
	page, size, ok := parsePaging(c, cc.defaultPageSize)
	if !ok {
		return
	}

	filter := calibre.Filter{Search: c.Query("search")}

	switch c.Query("sort") {
	case "", "title":
		filter.Sort = calibre.SortByTitle
	case "timestamp":
		filter.Sort = calibre.SortByTimestamp
	case "pubdate":
		filter.Sort = calibre.SortByPubDate
	case "lastmodified":
		filter.Sort = calibre.SortByLastModified
	default:
		respondBadRequest(c, "invalid sort")
		return
	}

	// Unknown filter labels yield an empty page rather than an error, the
	// library simply has no matching books.
	if lang := c.Query("lang"); lang != "" {
		id, found := cc.library.LanguageID(lang)
		if !found {
			c.JSON(http.StatusOK, calibre.Page[calibre.Book]{Entries: []calibre.Book{}, Page: page, Pages: 0})
			return
		}
		filter.LanguageID = id
	}
	if tag := c.Query("tag"); tag != "" {
		id, found := cc.library.TagID(tag)
		if !found {
			c.JSON(http.StatusOK, calibre.Page[calibre.Book]{Entries: []calibre.Book{}, Page: page, Pages: 0})
			return
		}
		filter.TagID = id
	}

	result, err := cc.library.Titles(page, size, filter)
	respondPage(c, result, err)
}

// GetBook returns one book with authors, tags, series, formats and comment
// GET /books/:id
func (cc *CatalogController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	details, err := cc.library.TitleDetails(id)
	if err != nil {
		respondInternalError(c, err, "book details")
		return
	}
	if details == nil {
		respondNotFound(c, "book")
		return
	}

	columns, err := cc.library.CustomColumns(id)
	if err != nil {
		respondInternalError(c, err, "custom columns")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book":           details.Book,
		"authors":        details.Authors,
		"tags":           details.Tags,
		"series":         details.Series,
		"languages":      details.Languages,
		"comment":        details.Comment,
		"formats":        details.Formats,
		"custom_columns": columns,
	})
}

// GetSeries returns one page of series
// GET /series?page=&page_size=&search=
func (cc *CatalogController) GetSeries(c *gin.Context) {
	page, size, ok := parsePaging(c, cc.defaultPageSize)
	if !ok {
		return
	}
	result, err := cc.library.Series(page, size, c.Query("search"))
	respondPage(c, result, err)
}

// GetSeriesByID returns one series with its books in series order
// GET /series/:id
func (cc *CatalogController) GetSeriesByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	details, err := cc.library.SeriesDetails(id)
	if err != nil {
		respondInternalError(c, err, "series details")
		return
	}
	if details == nil {
		respondNotFound(c, "series")
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetTags returns one page of tags
// GET /tags?page=&page_size=&search=
func (cc *CatalogController) GetTags(c *gin.Context) {
	page, size, ok := parsePaging(c, cc.defaultPageSize)
	if !ok {
		return
	}
	result, err := cc.library.Tags(page, size, c.Query("search"))
	respondPage(c, result, err)
}

// GetTag returns one tag with its books
// GET /tags/:id
func (cc *CatalogController) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	details, err := cc.library.TagDetails(id)
	if err != nil {
		respondInternalError(c, err, "tag details")
		return
	}
	if details == nil {
		respondNotFound(c, "tag")
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetLanguages returns all languages present in the library
// GET /languages
func (cc *CatalogController) GetLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, cc.library.Languages())
}

// GetFilters returns the values available for the books filter parameters
// GET /filters
func (cc *CatalogController) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": cc.library.Languages(),
		"tags":      cc.library.TagList(),
	})
}
