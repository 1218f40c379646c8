package annex

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pmaren/bookannex/internal/auth"
	"github.com/pmaren/bookannex/internal/entities"
)

// AddUser creates a new account. Empty username or password fails before any
// storage is touched; an existing username fails with ErrUserExists.
func (s *Store) AddUser(username, password string) (*entities.User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	var existing entities.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := entities.User{
		Username: username,
		Password: hash,
		Role:     entities.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account. The permanent admin account is exempt.
func (s *Store) DeleteUser(id uint) error {
	if id == entities.AdminUserID {
		return ErrAdminUser
	}
	res := s.db.Delete(&entities.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ChangePassword replaces a user's password. Fails when the user does not
// exist or the new password is empty.
func (s *Store) ChangePassword(id uint, password string) error {
	if password == "" {
		return ErrEmptyCredentials
	}

	var user entities.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.db.Save(&user).Error
}

// ChangeProfile updates a user's role and visibility restrictions. Languages
// and tags are comma-separated allow-lists, empty meaning unrestricted.
func (s *Store) ChangeProfile(id uint, role int, languages, tags string) error {
	var user entities.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	user.Role = role
	user.Languages = languages
	user.Tags = tags
	return s.db.Save(&user).Error
}

// Users lists all accounts ordered by username.
func (s *Store) Users() ([]entities.User, error) {
	var users []entities.User
	err := s.db.Order("username").Find(&users).Error
	return users, err
}

// User returns one account by ID, or nil when absent.
func (s *Store) User(id uint) (*entities.User, error) {
	var user entities.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByName returns one account by username, or nil when absent. The login
// collaborator uses this together with auth.CheckPassword.
func (s *Store) UserByName(username string) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
