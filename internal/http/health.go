package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pmaren/bookannex/internal/annex"
	"github.com/pmaren/bookannex/internal/calibre"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	library *calibre.Library
	store   *annex.Store
	version string
}

func NewHealthController(library *calibre.Library, store *annex.Store, version string) *HealthController {
	return &HealthController{
		library: library,
		store:   store,
		version: version,
	}
}

// Status reports overall service health. An unreadable library degrades the
// report but keeps the service up, catalog queries fall back to empty
// results while the annex stays writable.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.library != nil && h.library.Ok() {
		checks["library"] = "ok"
	} else {
		checks["library"] = "not readable"
		status = "degraded"
	}

	if h.store != nil {
		if err := h.store.Ping(); err != nil {
			checks["annex"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["annex"] = "ok"
		}
	} else {
		checks["annex"] = "not configured"
		status = "unhealthy"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
