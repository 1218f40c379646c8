package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmaren/bookannex/internal/entities"
)

func TestAdmin_GetConfig_Defaults(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, "GET", "/admin/config")
	assert.Equal(t, http.StatusOK, w.Code)

	var values map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &values))
	assert.Equal(t, entities.KnownConfigDefaults["page_size"], values["page_size"])
	assert.Contains(t, values, "display_app_name")
}

func TestAdmin_PutConfig(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "PUT", "/admin/config", `{"page_size": "15", "display_app_name": "My Shelf"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Written int `json:"written"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Written)

	// Saving the same values again writes nothing
	w = doJSON(t, router, "PUT", "/admin/config", `{"page_size": "15", "display_app_name": "My Shelf"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Written)

	w = doRequest(t, router, "GET", "/admin/config")
	var values map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &values))
	assert.Equal(t, "15", values["page_size"])
	assert.Equal(t, "My Shelf", values["display_app_name"])
}

func TestAdmin_PutConfig_RejectsNonObject(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "PUT", "/admin/config", `["page_size"]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_IDTemplateLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, "GET", "/admin/templates")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = doJSON(t, router, "PUT", "/admin/templates/goodreads", `{"val": "https://www.goodreads.com/book/show/%id%", "label": "Goodreads"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var template entities.IDTemplate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &template))
	assert.Equal(t, "goodreads", template.Name)
	assert.Equal(t, "Goodreads", template.Label)

	// Upsert replaces the value
	w = doJSON(t, router, "PUT", "/admin/templates/goodreads", `{"val": "https://goodreads.com/%id%", "label": "Goodreads"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/admin/templates")
	var templates []entities.IDTemplate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &templates))
	require.Len(t, templates, 1)
	assert.Equal(t, "https://goodreads.com/%id%", templates[0].Val)

	w = doRequest(t, router, "DELETE", "/admin/templates/goodreads")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "DELETE", "/admin/templates/goodreads")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_PutIDTemplate_MissingVal(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "PUT", "/admin/templates/isbn", `{"label": "ISBN"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
