package annex

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/pmaren/bookannex/internal/entities"
)

// LoadConfig returns the recognized configuration as defaults overlaid with
// stored values. Stored names outside the known set are logged and skipped;
// they may belong to a newer version and must not break display.
func (s *Store) LoadConfig() (map[string]string, error) {
	result := make(map[string]string, len(entities.KnownConfigDefaults))
	for name, val := range entities.KnownConfigDefaults {
		result[name] = val
	}

	var rows []entities.Config
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		if !entities.KnownConfigName(row.Name) {
			log.Printf("Ignoring unknown config name %q", row.Name)
			continue
		}
		result[row.Name] = row.Val
	}
	return result, nil
}

// ConfigValue returns one stored config value, falling back to the default
// for known names and the empty string otherwise.
func (s *Store) ConfigValue(name string) (string, error) {
	var row entities.Config
	err := s.db.Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.KnownConfigDefaults[name], nil
	}
	if err != nil {
		return "", err
	}
	return row.Val, nil
}

// SaveConfig writes the given values, skipping entries whose stored value is
// already identical. Unknown names are accepted and stored for forward
// compatibility. Returns the number of rows written.
func (s *Store) SaveConfig(values map[string]string) (int, error) {
	written := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for name, val := range values {
			var row entities.Config
			err := tx.Where("name = ?", name).First(&row).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				row = entities.Config{Name: name, Val: val}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				written++
			case err != nil:
				return err
			case row.Val != val:
				row.Val = val
				if err := tx.Save(&row).Error; err != nil {
					return err
				}
				written++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
