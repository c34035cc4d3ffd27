// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/roamly/roamly/internal/conf"
	"github.com/roamly/roamly/internal/errors"
)

// Interface abstracts the underlying database implementation and
// defines the persistence operations the application needs.
type Interface interface {
	Open() error
	Close() error

	// users
	GetUserByEmail(email string) (*User, error)
	SaveUser(user *User) error

	// comments
	GetComments(placeID string) ([]Comment, error)
	SaveComment(comment *Comment) error

	// generated place metadata
	GetPlaceDetails(placeName, country string) (*PlaceDetails, error)
	SavePlaceDetails(details *PlaceDetails) error
	GetAllPlaceDetails() ([]PlaceDetails, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a datastore instance based on the configured database type.
func New(settings *conf.Settings) Interface {
	switch settings.Database.Type {
	case "mysql":
		return &MySQLStore{Settings: settings}
	default:
		return &SQLiteStore{Settings: settings}
	}
}

// ErrRecordNotFound is returned for lookups that matched nothing.
var ErrRecordNotFound = gorm.ErrRecordNotFound

// GetUserByEmail returns the user with the given email, or
// ErrRecordNotFound.
func (ds *DataStore) GetUserByEmail(email string) (*User, error) {
	var user User
	if err := ds.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveUser inserts a new user record.
func (ds *DataStore) SaveUser(user *User) error {
	if err := ds.DB.Create(user).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "save-user").
			Build()
	}
	return nil
}

// GetComments returns all comments for a place, newest first.
func (ds *DataStore) GetComments(placeID string) ([]Comment, error) {
	var comments []Comment
	if err := ds.DB.Where("place_id = ?", placeID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "get-comments").
			Build()
	}
	return comments, nil
}

// SaveComment appends a comment.
func (ds *DataStore) SaveComment(comment *Comment) error {
	if err := ds.DB.Create(comment).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "save-comment").
			Build()
	}
	return nil
}

// GetPlaceDetails returns the cached metadata row for a place, or
// ErrRecordNotFound.
func (ds *DataStore) GetPlaceDetails(placeName, country string) (*PlaceDetails, error) {
	var details PlaceDetails
	if err := ds.DB.Where("place_name = ? AND country = ?", placeName, country).
		First(&details).Error; err != nil {
		return nil, err
	}
	return &details, nil
}

// SavePlaceDetails upserts the metadata row for a place.
func (ds *DataStore) SavePlaceDetails(details *PlaceDetails) error {
	var existing PlaceDetails
	err := ds.DB.Where("place_name = ? AND country = ?", details.PlaceName, details.Country).
		First(&existing).Error
	switch {
	case err == nil:
		details.ID = existing.ID
		err = ds.DB.Save(details).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = ds.DB.Create(details).Error
	}
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "save-place-details").
			Build()
	}
	return nil
}

// GetAllPlaceDetails returns every cached metadata row, used to prime
// the in-memory cache at startup.
func (ds *DataStore) GetAllPlaceDetails() ([]PlaceDetails, error) {
	var details []PlaceDetails
	if err := ds.DB.Find(&details).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "get-all-place-details").
			Build()
	}
	return details, nil
}

// createGormLogger returns a GORM logger that stays quiet unless a
// query is slow or fails.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// performAutoMigration runs schema migration for all models.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&User{}, &Comment{}, &PlaceDetails{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}
	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}
	return nil
}
