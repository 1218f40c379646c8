package entities

import (
	"time"
)

// Kind identifies which Calibre table a thing proxies. Calibre IDs are only
// unique per table, so overlay rows are always keyed by (Kind, CalibreID).
type Kind int

const (
	KindAuthor Kind = 1
	KindBook   Kind = 2
	KindSeries Kind = 3
	KindTag    Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindAuthor:
		return "author"
	case KindBook:
		return "book"
	case KindSeries:
		return "series"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// ParseKind maps a URL segment back to a Kind. Returns false for anything
// outside the four known entity kinds.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "author":
		return KindAuthor, true
	case "book":
		return KindBook, true
	case "series":
		return KindSeries, true
	case "tag":
		return KindTag, true
	default:
		return 0, false
	}
}

// CalibreThing is the overlay's proxy row for one library entity. RefCount
// always equals the number of attached artefacts + links + notes; the row is
// deleted as soon as the count drops to zero.
type CalibreThing struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Kind      Kind       `gorm:"uniqueIndex:idx_things_kind_cid" json:"kind"`
	CalibreID int64      `gorm:"uniqueIndex:idx_things_kind_cid" json:"calibre_id"`
	Name      string     `gorm:"size:512" json:"name"` // cached display name
	RefCount  int        `json:"ref_count"`
	Artefacts []Artefact `gorm:"foreignKey:CalibreThingID" json:"artefacts,omitempty"`
	Links     []Link     `gorm:"foreignKey:CalibreThingID" json:"links,omitempty"`
	Notes     []Note     `gorm:"foreignKey:CalibreThingID" json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (CalibreThing) TableName() string {
	return "calibre_things"
}

// Artefact kinds. Only thumbnails exist today; attaching a second artefact
// of the same kind overwrites the URL instead of creating a new row.
const ArtefactKindThumbnail = "thumbnail"

// Artefact is a file attached to a thing, stored as a path relative to the
// configured data directory.
type Artefact struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Kind           string    `gorm:"size:50" json:"kind"`
	URL            string    `gorm:"size:1024" json:"url"`
	CalibreThingID uint      `gorm:"index" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Artefact) TableName() string {
	return "artefacts"
}

// Link kinds.
const LinkKindGeneral = "general"

// Link is a user-supplied hyperlink attached to a thing. A thing can carry
// any number of links, ordered by insertion.
type Link struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Kind           string    `gorm:"size:50" json:"kind"`
	Label          string    `gorm:"size:256" json:"label"`
	URL            string    `gorm:"size:2048" json:"url"`
	CalibreThingID uint      `gorm:"index" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Link) TableName() string {
	return "links"
}

// Note kinds.
const NoteKindGeneral = "general"

// Note is free text attached to a thing; at most one per thing.
type Note struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Kind           string    `gorm:"size:50" json:"kind"`
	MIME           string    `gorm:"size:100" json:"mime"`
	Text           string    `gorm:"type:text" json:"text"`
	CalibreThingID uint      `gorm:"index" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Note) TableName() string {
	return "notes"
}
