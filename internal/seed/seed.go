package seed

import (
	"fmt"
	"log"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumMessages int
	NumLikes    int
	MaxDays     int
	ShouldClean bool
}

// Seed populates the database with demo data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d messages...", opts.NumUsers, opts.NumMessages)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	if len(users) == 0 {
		log.Println("no users to attach messages to, stopping")
		return nil
	}

	messages := make([]*models.Message, 0, opts.NumMessages)
	for i := 0; i < opts.NumMessages; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		message, err := factory.CreateMessage(author, opts.MaxDays)
		if err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		messages = append(messages, message)
	}
	log.Printf("created %d messages", len(messages))

	if len(messages) == 0 {
		log.Println("no messages to like, stopping")
		return nil
	}

	likes := 0
	for i := 0; i < opts.NumLikes; i++ {
		user := users[gofakeit.Number(0, len(users)-1)]
		message := messages[gofakeit.Number(0, len(messages)-1)]
		if err := factory.CreateLike(user, message); err != nil {
			return fmt.Errorf("failed to create like: %w", err)
		}
		likes++
	}
	log.Printf("created %d likes", likes)

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{&models.Like{}, &models.Message{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
