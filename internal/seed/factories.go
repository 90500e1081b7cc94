// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123!seed"), bcrypt.DefaultCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		Bio:      gofakeit.Sentence(10),
		Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		ImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMessage constructs and persists a sample `models.Message` authored
// by the given user, with a created_at spread over the past maxDays days.
func (f *Factory) CreateMessage(user *models.User, maxDays int, overrides ...func(*models.Message)) (*models.Message, error) {
	text := gofakeit.Sentence(gofakeit.Number(3, 12))
	if len(text) > models.MaxMessageLength {
		text = text[:models.MaxMessageLength]
	}
	message := &models.Message{
		Text:   text,
		UserID: user.ID,
	}

	if maxDays > 0 {
		daysBack := gofakeit.Number(0, maxDays-1)
		minsBack := gofakeit.Number(0, 24*60-1)
		message.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute)
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreateLike persists a like from `user` on `message`. Duplicate pairs are
// ignored so callers can pick random pairs without coordination.
func (f *Factory) CreateLike(user *models.User, message *models.Message) error {
	like := models.Like{UserID: user.ID, MessageID: message.ID}
	return f.db.Where("user_id = ? AND message_id = ?", user.ID, message.ID).
		FirstOrCreate(&like).Error
}
