package models

import "time"

// MaxMessageLength is the maximum number of characters in a message.
const MaxMessageLength = 140

// Message is a short text post owned by a single user.
//
// Messages are hard-deleted: when the owner removes one, the row (and its
// likes) are gone for good, so there is no DeletedAt column here.
type Message struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"not null" json:"text"`
	UserID uint   `gorm:"not null" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this message (computed)
	Liked     bool      `gorm:"-" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}
