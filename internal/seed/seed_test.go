package seed

import (
	"testing"

	"warbler/internal/database"
	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedPopulatesDatabase(t *testing.T) {
	db := setupSeedDB(t)

	err := Seed(db, Options{
		NumUsers:    5,
		NumMessages: 20,
		NumLikes:    15,
		MaxDays:     30,
	})
	require.NoError(t, err)

	var users, messages int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Message{}).Count(&messages).Error)
	assert.EqualValues(t, 5, users)
	assert.EqualValues(t, 20, messages)

	// likes land on random pairs, so duplicates collapse; at least one survives
	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	assert.Positive(t, likes)
	assert.LessOrEqual(t, likes, int64(15))
}

func TestSeedMessagesRespectLengthLimit(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 2, NumMessages: 30, MaxDays: 7}))

	var messages []models.Message
	require.NoError(t, db.Find(&messages).Error)
	for _, m := range messages {
		assert.LessOrEqual(t, len(m.Text), models.MaxMessageLength)
		assert.NotEmpty(t, m.Text)
	}
}

func TestFactoryCreateLikeIsIdempotent(t *testing.T) {
	db := setupSeedDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	require.NoError(t, err)
	message, err := factory.CreateMessage(user, 0)
	require.NoError(t, err)

	require.NoError(t, factory.CreateLike(user, message))
	require.NoError(t, factory.CreateLike(user, message))

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSeedShouldCleanWipesExistingRows(t *testing.T) {
	db := setupSeedDB(t)

	stale := &models.User{Username: "stale", Email: "stale@example.com", Password: "pw"}
	require.NoError(t, db.Create(stale).Error)

	require.NoError(t, Seed(db, Options{NumUsers: 3, NumMessages: 5, ShouldClean: true}))

	var found int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "stale").Count(&found).Error)
	assert.Zero(t, found)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 3, users)
}
