// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultImageURL is used when a user signs up without a profile image.
const DefaultImageURL = "/static/images/default-pic.png"

// User represents a registered user of the application.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Email          string         `gorm:"unique;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Bio            string         `json:"bio"`
	Location       string         `json:"location"`
	ImageURL       string         `json:"image_url"`
	HeaderImageURL string         `json:"header_image_url"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Messages       []Message      `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}
