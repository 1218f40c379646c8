package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmaren/bookannex/internal/annex"
	"github.com/pmaren/bookannex/internal/calibre"
	"github.com/pmaren/bookannex/internal/entities"
	"github.com/pmaren/bookannex/internal/facade"
	"github.com/pmaren/bookannex/internal/thumbs"
)

// maxThumbnailBytes caps uploaded thumbnail size at 5 MiB.
const maxThumbnailBytes = 5 << 20

// MetadataController manages the overlay data attached to library entities:
// thumbnails, external links and notes. Handlers are bound to an entity kind
// at route registration time.
type MetadataController struct {
	store   *annex.Store
	library *calibre.Library
	thumbs  *thumbs.Store
}

func NewMetadataController(store *annex.Store, library *calibre.Library, thumbStore *thumbs.Store) *MetadataController {
	return &MetadataController{store: store, library: library, thumbs: thumbStore}
}

// handle builds a facade handle for the addressed entity. The display name
// is refreshed from the library so overlay rows keep a current name cache.
func (mc *MetadataController) handle(kind entities.Kind, id int64) *facade.Handle {
	return facade.ForKind(mc.store, kind, id, mc.library.EntityName(kind, id))
}

// GetThumbnail serves the stored thumbnail file
// GET /<kind>/:id/thumbnail
func (mc *MetadataController) GetThumbnail(kind entities.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		artefact, err := mc.handle(kind, id).Thumbnail()
		if err != nil {
			respondInternalError(c, err, "get thumbnail")
			return
		}
		if artefact == nil || !mc.thumbs.Exists(artefact.URL) {
			respondNotFound(c, "thumbnail")
			return
		}
		c.File(mc.thumbs.AbsPath(artefact.URL))
	}
}

// PutThumbnail stores the request body as the entity's thumbnail, replacing
// any previous one
// PUT /<kind>/:id/thumbnail
func (mc *MetadataController) PutThumbnail(kind entities.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if !mc.library.HasEntity(kind, id) {
			respondNotFound(c, kind.String())
			return
		}

		data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxThumbnailBytes+1))
		if err != nil {
			respondBadRequest(c, "failed to read request body")
			return
		}
		if len(data) == 0 {
			respondBadRequest(c, "empty thumbnail body")
			return
		}
		if len(data) > maxThumbnailBytes {
			respondBadRequest(c, "thumbnail too large")
			return
		}

		rel := mc.thumbs.RelPath(kind, id)
		if err := mc.thumbs.Write(rel, data); err != nil {
			respondInternalError(c, err, "write thumbnail file")
			return
		}

		artefact, err := mc.handle(kind, id).SetThumbnail(rel)
		if err != nil {
			respondInternalError(c, err, "attach thumbnail")
			return
		}
		c.JSON(http.StatusOK, artefact)
	}
}

// DeleteThumbnail removes the thumbnail and its file
// DELETE /<kind>/:id/thumbnail
func (mc *MetadataController) DeleteThumbnail(kind entities.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		h := mc.handle(kind, id)
		artefact, err := h.Thumbnail()
		if err != nil {
			respondInternalError(c, err, "get thumbnail")
			return
		}
		deleted, err := h.DeleteThumbnail()
		if err != nil {
			respondInternalError(c, err, "delete thumbnail")
			return
		}
		if !deleted {
			respondNotFound(c, "thumbnail")
			return
		}
		if artefact != nil {
			if err := mc.thumbs.Delete(artefact.URL); err != nil {
				respondInternalError(c, err, "delete thumbnail file")
				return
			}
		}
		respondSuccess(c, "thumbnail deleted")
	}
}

// GetLinks returns all links attached to the entity
// GET /<kind>/:id/links
func (mc *MetadataController) GetLinks(kind entities.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		links, err := mc.handle(kind, id).Links()
		if err != nil {
			respondInternalError(c, err, "get links")
			return
		}
		c.JSON(http.StatusOK, links)
	}
}

// AddLink attaches a new link to the entity
// POST /<kind>/:id/links
func (mc *MetadataController) AddLink(kind entities.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req struct {
			Label string `json:"label" binding:"required"`
			URL   string `json:"url" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "label and url are required")
			return
		}
		if !mc.library.HasEntity(kind, id) {
			respondNotFound(c, kind.String())
			return
		}

		link, err := mc.handle(kind, id).AddLink(req.Label, req.URL)
		if err != nil {
			respondInternalError(c, err, "add link")
			return
		}
		respondCreated(c, link)
	}
}

// DeleteLink removes one link by ID
// DELETE /<kind>/:id/links/:linkId
func (mc *MetadataController) DeleteLink(kind entities.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		linkID, ok := parseIDParam(c, "linkId")
		if !ok {
			return
		}
		deleted, err := mc.handle(kind, id).DeleteLink(uint(linkID))
		if err != nil {
			respondInternalError(c, err, "delete link")
			return
		}
		if !deleted {
			respondNotFound(c, "link")
			return
		}
		respondSuccess(c, "link deleted")
	}
}

// GetNote returns the note attached to the entity
// GET /<kind>/:id/note
func (mc *MetadataController) GetNote(kind entities.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		note, err := mc.handle(kind, id).Note()
		if err != nil {
			respondInternalError(c, err, "get note")
			return
		}
		if note == nil {
			respondNotFound(c, "note")
			return
		}
		c.JSON(http.StatusOK, note)
	}
}

// PutNote attaches or overwrites the note
// PUT /<kind>/:id/note
func (mc *MetadataController) PutNote(kind entities.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req struct {
			MimeType string `json:"mime_type"`
			Text     string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "text is required")
			return
		}
		if req.MimeType == "" {
			req.MimeType = "text/plain"
		}
		if !mc.library.HasEntity(kind, id) {
			respondNotFound(c, kind.String())
			return
		}

		note, err := mc.handle(kind, id).SetNote(req.MimeType, req.Text)
		if err != nil {
			respondInternalError(c, err, "set note")
			return
		}
		c.JSON(http.StatusOK, note)
	}
}

// DeleteNote removes the note
// DELETE /<kind>/:id/note
func (mc *MetadataController) DeleteNote(kind entities.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		deleted, err := mc.handle(kind, id).DeleteNote()
		if err != nil {
			respondInternalError(c, err, "delete note")
			return
		}
		if !deleted {
			respondNotFound(c, "note")
			return
		}
		respondSuccess(c, "note deleted")
	}
}
