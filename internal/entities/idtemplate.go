package entities

import "time"

// IDTemplate maps an identifier scheme (e.g. "isbn", "goodreads") to a URL
// pattern used to render external links for books. Free-standing: unlike
// artefacts and links it has no reference-counted parent.
type IDTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Val       string    `gorm:"size:1024" json:"val"` // URL pattern, %id% placeholder
	Label     string    `gorm:"size:256" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IDTemplate) TableName() string {
	return "id_templates"
}
