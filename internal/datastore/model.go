// model.go this code defines the data model for the application
package datastore

import "time"

// User represents a registered user. Only the password hash is stored.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	UserName     string `gorm:"type:varchar(64);not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(128);not null"`
	CreatedAt    time.Time
}

// Comment represents a user comment on a place. PlaceID is the stable
// dataset index as a string; comments are append-only.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	PlaceID   string    `gorm:"type:varchar(32);index:idx_comments_place;not null"`
	UserName  string    `gorm:"type:varchar(64);not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// PlaceDetails caches generated metadata for a place so restarts do not
// re-query the metadata provider. (PlaceName, Country) is unique.
type PlaceDetails struct {
	ID          uint   `gorm:"primaryKey"`
	PlaceName   string `gorm:"type:varchar(128);uniqueIndex:idx_place_country;not null"`
	Country     string `gorm:"type:varchar(128);uniqueIndex:idx_place_country;not null"`
	Description string `gorm:"type:text"`
	Currency    string `gorm:"type:varchar(64)"`
	Language    string `gorm:"type:varchar(64)"`
	UpdatedAt   time.Time
}
