package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmaren/bookannex/internal/annex"
)

// AdminController serves runtime configuration and external ID templates.
type AdminController struct {
	store *annex.Store
}

func NewAdminController(store *annex.Store) *AdminController {
	return &AdminController{store: store}
}

// GetConfig returns the full configuration map with defaults applied
// GET /admin/config
func (ac *AdminController) GetConfig(c *gin.Context) {
	values, err := ac.store.LoadConfig()
	if err != nil {
		respondInternalError(c, err, "load config")
		return
	}
	c.JSON(http.StatusOK, values)
}

// PutConfig saves configuration values, writing only changed entries
// PUT /admin/config
func (ac *AdminController) PutConfig(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		respondBadRequest(c, "expected a string-to-string object")
		return
	}

	written, err := ac.store.SaveConfig(values)
	if err != nil {
		respondInternalError(c, err, "save config")
		return
	}
	c.JSON(http.StatusOK, gin.H{"written": written})
}

// GetIDTemplates returns all external ID link templates
// GET /admin/templates
func (ac *AdminController) GetIDTemplates(c *gin.Context) {
	templates, err := ac.store.IDTemplates()
	if err != nil {
		respondInternalError(c, err, "load id templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// PutIDTemplate creates or updates one template by name
// PUT /admin/templates/:name
func (ac *AdminController) PutIDTemplate(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		respondBadRequest(c, "template name is required")
		return
	}

	var req struct {
		Val   string `json:"val" binding:"required"`
		Label string `json:"label"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "val is required")
		return
	}

	template, err := ac.store.SaveIDTemplate(name, req.Val, req.Label)
	if err != nil {
		respondInternalError(c, err, "save id template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteIDTemplate removes one template by name
// DELETE /admin/templates/:name
func (ac *AdminController) DeleteIDTemplate(c *gin.Context) {
	deleted, err := ac.store.DeleteIDTemplate(c.Param("name"))
	if err != nil {
		respondInternalError(c, err, "delete id template")
		return
	}
	if !deleted {
		respondNotFound(c, "template")
		return
	}
	respondSuccess(c, "template deleted")
}
