package entities

import "time"

// Config is one key/value pair of application configuration stored in the
// annex database.
type Config struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Val       string    `gorm:"type:text" json:"val"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Config) TableName() string {
	return "configs"
}

// Known config names. Stored rows outside this set are tolerated (they may
// come from a newer version) but skipped when loading config for display.
const (
	ConfigNameDisplayAppName = "display_app_name"
	ConfigNamePageSize       = "page_size"
	ConfigNameThumbWidth     = "thumb_width"
	ConfigNameThumbHeight    = "thumb_height"
	ConfigNameThumbClipped   = "thumb_clipped"
	ConfigNameLoginRequired  = "login_required"
	ConfigNameTitleSort      = "title_sort"
	ConfigNameOPDSEnabled    = "opds_enabled"
	ConfigNameMetadataUpdate = "metadata_update"
)

// KnownConfigDefaults is the closed set of recognized config names with
// their default values.
var KnownConfigDefaults = map[string]string{
	ConfigNameDisplayAppName: "BookAnnex",
	ConfigNamePageSize:       "30",
	ConfigNameThumbWidth:     "160",
	ConfigNameThumbHeight:    "160",
	ConfigNameThumbClipped:   "1",
	ConfigNameLoginRequired:  "0",
	ConfigNameTitleSort:      "title",
	ConfigNameOPDSEnabled:    "1",
	ConfigNameMetadataUpdate: "0",
}

// KnownConfigName reports whether name belongs to the recognized set.
func KnownConfigName(name string) bool {
	_, ok := KnownConfigDefaults[name]
	return ok
}
