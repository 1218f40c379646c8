// Package annex is the writable side database of the application. It stores
// everything the Calibre library format cannot: thumbnails, links and notes
// attached to library entities, plus configuration, user accounts and ID
// templates.
package annex

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pmaren/bookannex/internal/auth"
	"github.com/pmaren/bookannex/internal/entities"
)

var (
	// ErrEmptyCredentials is returned when a username or password is empty.
	ErrEmptyCredentials = errors.New("username and password must not be empty")
	// ErrUserExists is returned when the username is already taken.
	ErrUserExists = errors.New("username already exists")
	// ErrAdminUser is returned when deleting the permanent admin account.
	ErrAdminUser = errors.New("the admin user cannot be deleted")
	// ErrUserNotFound is returned when the target user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Store provides all annex database operations.
type Store struct {
	db         *gorm.DB
	bcryptCost int
}

// Open opens (or creates) the annex database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open annex database: %w", err)
	}
	store, err := New(db)
	if err != nil {
		return nil, err
	}
	log.Printf("Annex database initialized at %s", path)
	return store, nil
}

// New wraps an existing gorm connection, migrates the schema and seeds the
// admin account if the user table is empty.
func New(db *gorm.DB) (*Store, error) {
	err := db.AutoMigrate(
		&entities.CalibreThing{},
		&entities.Artefact{},
		&entities.Link{},
		&entities.Note{},
		&entities.Config{},
		&entities.User{},
		&entities.IDTemplate{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate annex database: %w", err)
	}

	store := &Store{db: db, bcryptCost: bcrypt.DefaultCost}
	if err := store.seedAdmin(); err != nil {
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}
	return store, nil
}

// SetBcryptCost overrides the password hashing cost, mainly to keep tests fast.
func (s *Store) SetBcryptCost(cost int) {
	s.bcryptCost = cost
}

// Ping checks the underlying database connection.
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedAdmin creates the permanent administrator account on a fresh database.
func (s *Store) seedAdmin() error {
	var count int64
	if err := s.db.Model(&entities.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin", s.bcryptCost)
	if err != nil {
		return err
	}
	admin := entities.User{
		ID:       entities.AdminUserID,
		Username: "admin",
		Password: hash,
		Role:     entities.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Created admin user with default password, change it after first login")
	return nil
}
