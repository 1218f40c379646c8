// Package facade wraps the annex store with per-entity handles, so callers
// work with "this author" instead of (kind, id) pairs.
package facade

import (
	"github.com/pmaren/bookannex/internal/annex"
	"github.com/pmaren/bookannex/internal/entities"
)

// Handle is bound to one library entity. It carries no state beyond the
// identity pair and a cached display name; the overlay row is created lazily
// on the first mutation.
type Handle struct {
	store *annex.Store
	kind  entities.Kind
	id    int64
	name  string
}

// Author returns a handle for one author. The name caches the display name
// on the overlay row and may be empty for read-only use.
func Author(store *annex.Store, id int64, name string) *Handle {
	return &Handle{store: store, kind: entities.KindAuthor, id: id, name: name}
}

// Book returns a handle for one book.
func Book(store *annex.Store, id int64, title string) *Handle {
	return &Handle{store: store, kind: entities.KindBook, id: id, name: title}
}

// Series returns a handle for one series.
func Series(store *annex.Store, id int64, name string) *Handle {
	return &Handle{store: store, kind: entities.KindSeries, id: id, name: name}
}

// Tag returns a handle for one tag.
func Tag(store *annex.Store, id int64, name string) *Handle {
	return &Handle{store: store, kind: entities.KindTag, id: id, name: name}
}

// ForKind returns a handle for an arbitrary kind, for callers that route on
// URL segments.
func ForKind(store *annex.Store, kind entities.Kind, id int64, name string) *Handle {
	return &Handle{store: store, kind: kind, id: id, name: name}
}

// thing looks up the overlay row without creating it.
func (h *Handle) thing() (*entities.CalibreThing, error) {
	return h.store.FindThing(h.kind, h.id)
}

// ensure creates the overlay row if needed. Every mutation goes through
// here, which keeps the creation point in one auditable place.
func (h *Handle) ensure() (*entities.CalibreThing, error) {
	return h.store.EnsureThing(h.kind, h.id, h.name)
}

// Thumbnail returns the attached thumbnail artefact, or nil when the entity
// carries no overlay data at all.
func (h *Handle) Thumbnail() (*entities.Artefact, error) {
	thing, err := h.thing()
	if err != nil || thing == nil {
		return nil, err
	}
	return h.store.Thumbnail(thing)
}

// SetThumbnail attaches or overwrites the thumbnail. The url is a path
// relative to the configured data directory.
func (h *Handle) SetThumbnail(url string) (*entities.Artefact, error) {
	thing, err := h.ensure()
	if err != nil {
		return nil, err
	}
	return h.store.AttachArtefact(thing, entities.ArtefactKindThumbnail, url)
}

// DeleteThumbnail removes the thumbnail. Returns false when none existed.
func (h *Handle) DeleteThumbnail() (bool, error) {
	thing, err := h.thing()
	if err != nil || thing == nil {
		return false, err
	}
	artefact, err := h.store.Thumbnail(thing)
	if err != nil || artefact == nil {
		return false, err
	}
	return h.store.DetachArtefact(thing, artefact.ID)
}

// Links returns all attached links in insertion order.
func (h *Handle) Links() ([]entities.Link, error) {
	thing, err := h.thing()
	if err != nil || thing == nil {
		return []entities.Link{}, err
	}
	return h.store.Links(thing)
}

// AddLink attaches a new link.
func (h *Handle) AddLink(label, url string) (*entities.Link, error) {
	thing, err := h.ensure()
	if err != nil {
		return nil, err
	}
	return h.store.AttachLink(thing, label, url)
}

// DeleteLink removes one link by ID. Returns false when no such link is
// attached to this entity.
func (h *Handle) DeleteLink(linkID uint) (bool, error) {
	thing, err := h.thing()
	if err != nil || thing == nil {
		return false, err
	}
	return h.store.DetachLink(thing, linkID)
}

// Note returns the attached note, or nil when absent.
func (h *Handle) Note() (*entities.Note, error) {
	thing, err := h.thing()
	if err != nil || thing == nil {
		return nil, err
	}
	return h.store.Note(thing)
}

// SetNote attaches or overwrites the note.
func (h *Handle) SetNote(mime, text string) (*entities.Note, error) {
	thing, err := h.ensure()
	if err != nil {
		return nil, err
	}
	return h.store.AttachNote(thing, mime, text)
}

// DeleteNote removes the note. Returns false when none existed.
func (h *Handle) DeleteNote() (bool, error) {
	thing, err := h.thing()
	if err != nil || thing == nil {
		return false, err
	}
	note, err := h.store.Note(thing)
	if err != nil || note == nil {
		return false, err
	}
	return h.store.DetachNote(thing, note.ID)
}
