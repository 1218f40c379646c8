// Package http exposes the catalog and the overlay store over a JSON API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/pmaren/bookannex/internal/annex"
	"github.com/pmaren/bookannex/internal/calibre"
	"github.com/pmaren/bookannex/internal/entities"
	"github.com/pmaren/bookannex/internal/scheduler"
	"github.com/pmaren/bookannex/internal/thumbs"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router.
type RouterConfig struct {
	Library *calibre.Library
	Store   *annex.Store
	Thumbs  *thumbs.Store

	// Janitor is optional; when set the sweep can be triggered manually.
	Janitor *scheduler.JanitorScheduler

	// DefaultPageSize applies when a list request carries no page_size.
	DefaultPageSize int

	Version string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Library, cfg.Store, cfg.Version)
	catalog := NewCatalogController(cfg.Library, cfg.DefaultPageSize)
	metadata := NewMetadataController(cfg.Store, cfg.Library, cfg.Thumbs)
	admin := NewAdminController(cfg.Store)
	users := NewUsersController(cfg.Store)

	// Health endpoints
	router.GET("/healthz", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog endpoints
	router.GET("/authors", catalog.GetAuthors)
	router.GET("/authors/:id", catalog.GetAuthor)
	router.GET("/books", catalog.GetBooks)
	router.GET("/books/:id", catalog.GetBook)
	router.GET("/series", catalog.GetSeries)
	router.GET("/series/:id", catalog.GetSeriesByID)
	router.GET("/tags", catalog.GetTags)
	router.GET("/tags/:id", catalog.GetTag)
	router.GET("/languages", catalog.GetLanguages)
	router.GET("/filters", catalog.GetFilters)

	// Overlay metadata endpoints, one group per entity kind
	for prefix, kind := range map[string]entities.Kind{
		"/authors": entities.KindAuthor,
		"/books":   entities.KindBook,
		"/series":  entities.KindSeries,
		"/tags":    entities.KindTag,
	} {
		group := router.Group(prefix + "/:id")
		group.GET("/thumbnail", metadata.GetThumbnail(kind))
		group.PUT("/thumbnail", metadata.PutThumbnail(kind))
		group.DELETE("/thumbnail", metadata.DeleteThumbnail(kind))
		group.GET("/links", metadata.GetLinks(kind))
		group.POST("/links", metadata.AddLink(kind))
		group.DELETE("/links/:linkId", metadata.DeleteLink(kind))
		group.GET("/note", metadata.GetNote(kind))
		group.PUT("/note", metadata.PutNote(kind))
		group.DELETE("/note", metadata.DeleteNote(kind))
	}

	// Admin endpoints
	router.GET("/admin/config", admin.GetConfig)
	router.PUT("/admin/config", admin.PutConfig)
	router.GET("/admin/templates", admin.GetIDTemplates)
	router.PUT("/admin/templates/:name", admin.PutIDTemplate)
	router.DELETE("/admin/templates/:name", admin.DeleteIDTemplate)

	// User management endpoints
	router.GET("/admin/users", users.GetUsers)
	router.POST("/admin/users", users.CreateUser)
	router.GET("/admin/users/:id", users.GetUser)
	router.DELETE("/admin/users/:id", users.DeleteUser)
	router.PUT("/admin/users/:id/password", users.ChangePassword)
	router.PUT("/admin/users/:id/profile", users.ChangeProfile)

	// Maintenance endpoints
	if cfg.Janitor != nil {
		router.POST("/admin/janitor/run", func(c *gin.Context) {
			if err := cfg.Janitor.RunNow(); err != nil {
				respondInternalError(c, err, "enqueue janitor sweep")
				return
			}
			respondSuccess(c, "sweep enqueued")
		})
	}

	return router
}
