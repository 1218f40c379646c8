package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmaren/bookannex/internal/entities"
)

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestMetadata_ThumbnailLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// No thumbnail yet
	w := doRequest(t, router, "GET", "/books/1/thumbnail")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Upload
	payload := []byte("not-really-a-png")
	w = httptest.NewRecorder()
	req, err := http.NewRequest("PUT", "/books/1/thumbnail", bytes.NewReader(payload))
	require.NoError(t, err)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var artefact entities.Artefact
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &artefact))
	assert.Equal(t, "thumb_book_1.png", artefact.URL)

	// Served back byte for byte
	w = doRequest(t, router, "GET", "/books/1/thumbnail")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.Bytes())

	// Delete and verify gone
	w = doRequest(t, router, "DELETE", "/books/1/thumbnail")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/books/1/thumbnail")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Second delete reports nothing to do
	w = doRequest(t, router, "DELETE", "/books/1/thumbnail")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetadata_PutThumbnail_UnknownEntity(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, err := http.NewRequest("PUT", "/books/99/thumbnail", bytes.NewReader([]byte("img")))
	require.NoError(t, err)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetadata_PutThumbnail_EmptyBody(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, err := http.NewRequest("PUT", "/books/1/thumbnail", bytes.NewReader(nil))
	require.NoError(t, err)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetadata_LinkLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Starts empty
	w := doRequest(t, router, "GET", "/authors/1/links")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	// Add two links
	w = doJSON(t, router, "POST", "/authors/1/links", `{"label": "Wikipedia", "url": "https://en.wikipedia.org/wiki/Jane_Austen"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var first entities.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "Wikipedia", first.Label)

	w = doJSON(t, router, "POST", "/authors/1/links", `{"label": "Homepage", "url": "https://example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Insertion order preserved
	w = doRequest(t, router, "GET", "/authors/1/links")
	require.Equal(t, http.StatusOK, w.Code)

	var links []entities.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	require.Len(t, links, 2)
	assert.Equal(t, "Wikipedia", links[0].Label)
	assert.Equal(t, "Homepage", links[1].Label)

	// Delete the first one
	w = doRequest(t, router, "DELETE", fmt.Sprintf("/authors/1/links/%d", links[0].ID))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/authors/1/links")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	require.Len(t, links, 1)
	assert.Equal(t, "Homepage", links[0].Label)

	// Deleting an unknown link is a 404
	w = doRequest(t, router, "DELETE", "/authors/1/links/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetadata_AddLink_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/authors/1/links", `{"label": "no url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetadata_NoteLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, "GET", "/books/2/note")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "PUT", "/books/2/note", `{"text": "first draft"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var note entities.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &note))
	assert.Equal(t, "first draft", note.Text)
	assert.Equal(t, "text/plain", note.MIME)

	// Overwrite replaces the text in place
	w = doJSON(t, router, "PUT", "/books/2/note", `{"text": "second draft", "mime_type": "text/markdown"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/books/2/note")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &note))
	assert.Equal(t, "second draft", note.Text)
	assert.Equal(t, "text/markdown", note.MIME)

	w = doRequest(t, router, "DELETE", "/books/2/note")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/books/2/note")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetadata_KindsAreIndependent(t *testing.T) {
	router := newTestRouter(t)

	// Author 1 and book 1 share the numeric ID but not the overlay row.
	w := doJSON(t, router, "PUT", "/authors/1/note", `{"text": "about the author"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/books/1/note")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
