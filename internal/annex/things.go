package annex

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pmaren/bookannex/internal/entities"
)

// FindThing looks up the overlay row for one library entity. Pure lookup:
// returns nil without side effects when no row exists.
func (s *Store) FindThing(kind entities.Kind, calibreID int64) (*entities.CalibreThing, error) {
	var thing entities.CalibreThing
	err := s.db.Where("kind = ? AND calibre_id = ?", kind, calibreID).First(&thing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &thing, nil
}

// EnsureThing finds or creates the overlay row for one library entity.
// Creation starts at ref count zero; the caller is expected to attach
// something right after. The cached display name is refreshed when the
// library has renamed the entity.
func (s *Store) EnsureThing(kind entities.Kind, calibreID int64, name string) (*entities.CalibreThing, error) {
	var thing entities.CalibreThing
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("kind = ? AND calibre_id = ?", kind, calibreID).First(&thing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			thing = entities.CalibreThing{
				Kind:      kind,
				CalibreID: calibreID,
				Name:      name,
				RefCount:  0,
			}
			return tx.Create(&thing).Error
		}
		if err != nil {
			return err
		}
		if name != "" && thing.Name != name {
			thing.Name = name
			return tx.Save(&thing).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &thing, nil
}

// AttachArtefact attaches an artefact of the given kind. If one already
// exists its URL is overwritten and the ref count is left alone; artefacts
// are singletons per kind.
func (s *Store) AttachArtefact(thing *entities.CalibreThing, kind, url string) (*entities.Artefact, error) {
	var artefact entities.Artefact
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("calibre_thing_id = ? AND kind = ?", thing.ID, kind).First(&artefact).Error
		switch {
		case err == nil:
			artefact.URL = url
			return tx.Save(&artefact).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			artefact = entities.Artefact{
				Kind:           kind,
				URL:            url,
				CalibreThingID: thing.ID,
			}
			if err := tx.Create(&artefact).Error; err != nil {
				return err
			}
			return s.bumpRefCount(tx, thing, 1)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &artefact, nil
}

// AttachLink always creates a new link row and increments the ref count.
func (s *Store) AttachLink(thing *entities.CalibreThing, label, url string) (*entities.Link, error) {
	link := entities.Link{
		Kind:           entities.LinkKindGeneral,
		Label:          label,
		URL:            url,
		CalibreThingID: thing.ID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
		return s.bumpRefCount(tx, thing, 1)
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// AttachNote attaches the note of a thing. A thing carries at most one note:
// an existing note is overwritten in place without touching the ref count.
func (s *Store) AttachNote(thing *entities.CalibreThing, mime, text string) (*entities.Note, error) {
	var note entities.Note
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("calibre_thing_id = ?", thing.ID).First(&note).Error
		switch {
		case err == nil:
			note.MIME = mime
			note.Text = text
			return tx.Save(&note).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			note = entities.Note{
				Kind:           entities.NoteKindGeneral,
				MIME:           mime,
				Text:           text,
				CalibreThingID: thing.ID,
			}
			if err := tx.Create(&note).Error; err != nil {
				return err
			}
			return s.bumpRefCount(tx, thing, 1)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// DetachArtefact removes one artefact. Returns false when no such artefact
// is attached to the thing; that is not an error.
func (s *Store) DetachArtefact(thing *entities.CalibreThing, artefactID uint) (bool, error) {
	return s.detachChild(thing, func(tx *gorm.DB) (int64, error) {
		res := tx.Where("id = ? AND calibre_thing_id = ?", artefactID, thing.ID).
			Delete(&entities.Artefact{})
		return res.RowsAffected, res.Error
	})
}

// DetachLink removes one link.
func (s *Store) DetachLink(thing *entities.CalibreThing, linkID uint) (bool, error) {
	return s.detachChild(thing, func(tx *gorm.DB) (int64, error) {
		res := tx.Where("id = ? AND calibre_thing_id = ?", linkID, thing.ID).
			Delete(&entities.Link{})
		return res.RowsAffected, res.Error
	})
}

// DetachNote removes the note of a thing.
func (s *Store) DetachNote(thing *entities.CalibreThing, noteID uint) (bool, error) {
	return s.detachChild(thing, func(tx *gorm.DB) (int64, error) {
		res := tx.Where("id = ? AND calibre_thing_id = ?", noteID, thing.ID).
			Delete(&entities.Note{})
		return res.RowsAffected, res.Error
	})
}

// detachChild deletes a child row and decrements the ref count. When the
// count reaches zero the thing row itself is deleted in the same
// transaction, so a zero-count thing is never observable.
func (s *Store) detachChild(thing *entities.CalibreThing, del func(tx *gorm.DB) (int64, error)) (bool, error) {
	removed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := del(tx)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Nothing to do.
			return nil
		}
		removed = true
		return s.bumpRefCount(tx, thing, -1)
	})
	return removed, err
}

// bumpRefCount applies a ref count delta inside a transaction and enforces
// the zero-deletes-the-row rule. A count below zero means a broken invariant
// elsewhere and is surfaced as an error, not repaired.
func (s *Store) bumpRefCount(tx *gorm.DB, thing *entities.CalibreThing, delta int) error {
	var current entities.CalibreThing
	if err := tx.First(&current, thing.ID).Error; err != nil {
		return err
	}
	current.RefCount += delta
	if current.RefCount < 0 {
		return fmt.Errorf("integrity violation: ref count below zero for %s %d",
			current.Kind, current.CalibreID)
	}
	if current.RefCount == 0 {
		if err := tx.Delete(&entities.CalibreThing{}, current.ID).Error; err != nil {
			return err
		}
	} else if err := tx.Save(&current).Error; err != nil {
		return err
	}
	thing.RefCount = current.RefCount
	return nil
}

// Thumbnail returns the thing's thumbnail artefact, or nil when absent.
func (s *Store) Thumbnail(thing *entities.CalibreThing) (*entities.Artefact, error) {
	var artefact entities.Artefact
	err := s.db.Where("calibre_thing_id = ? AND kind = ?", thing.ID, entities.ArtefactKindThumbnail).
		First(&artefact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artefact, nil
}

// Links returns the thing's links in insertion order.
func (s *Store) Links(thing *entities.CalibreThing) ([]entities.Link, error) {
	var links []entities.Link
	err := s.db.Where("calibre_thing_id = ?", thing.ID).Order("id").Find(&links).Error
	return links, err
}

// Note returns the thing's note, or nil when absent.
func (s *Store) Note(thing *entities.CalibreThing) (*entities.Note, error) {
	var note entities.Note
	err := s.db.Where("calibre_thing_id = ?", thing.ID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Things lists all overlay rows of one kind, e.g. every author that carries
// a note, ordered by cached name.
func (s *Store) Things(kind entities.Kind) ([]entities.CalibreThing, error) {
	var things []entities.CalibreThing
	err := s.db.Where("kind = ?", kind).Order("name").Find(&things).Error
	return things, err
}

// CountOrphans counts overlay rows whose library entity no longer exists
// without touching them.
func (s *Store) CountOrphans(exists func(kind entities.Kind, calibreID int64) bool) (int, error) {
	var things []entities.CalibreThing
	if err := s.db.Find(&things).Error; err != nil {
		return 0, err
	}

	orphans := 0
	for _, thing := range things {
		if !exists(thing.Kind, thing.CalibreID) {
			orphans++
		}
	}
	return orphans, nil
}

// SweepOrphans removes overlay rows whose library entity no longer exists,
// children first. Returns the number of things removed.
func (s *Store) SweepOrphans(exists func(kind entities.Kind, calibreID int64) bool) (int, error) {
	var things []entities.CalibreThing
	if err := s.db.Find(&things).Error; err != nil {
		return 0, err
	}

	removed := 0
	for _, thing := range things {
		if exists(thing.Kind, thing.CalibreID) {
			continue
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			for _, model := range []any{&entities.Artefact{}, &entities.Link{}, &entities.Note{}} {
				if err := tx.Where("calibre_thing_id = ?", thing.ID).Delete(model).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&entities.CalibreThing{}, thing.ID).Error
		})
		if err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
