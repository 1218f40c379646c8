package annex

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pmaren/bookannex/internal/entities"
)

// IDTemplates lists all identifier URL templates ordered by name.
func (s *Store) IDTemplates() ([]entities.IDTemplate, error) {
	var templates []entities.IDTemplate
	err := s.db.Order("name").Find(&templates).Error
	return templates, err
}

// IDTemplate returns one template by name, or nil when absent.
func (s *Store) IDTemplate(name string) (*entities.IDTemplate, error) {
	var template entities.IDTemplate
	err := s.db.Where("name = ?", name).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// SaveIDTemplate creates or updates the template with the given name.
func (s *Store) SaveIDTemplate(name, val, label string) (*entities.IDTemplate, error) {
	var template entities.IDTemplate
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", name).First(&template).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			template = entities.IDTemplate{Name: name, Val: val, Label: label}
			return tx.Create(&template).Error
		}
		if err != nil {
			return err
		}
		template.Val = val
		template.Label = label
		return tx.Save(&template).Error
	})
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// DeleteIDTemplate removes the template with the given name. Returns false
// when no such template exists.
func (s *Store) DeleteIDTemplate(name string) (bool, error) {
	res := s.db.Where("name = ?", name).Delete(&entities.IDTemplate{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
