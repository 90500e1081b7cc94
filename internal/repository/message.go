package repository

import (
	"context"
	"errors"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for message and like data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error)
	List(ctx context.Context, limit, offset int) ([]*models.Message, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, messageID uint) error
	Unlike(ctx context.Context, userID, messageID uint) error
	IsLiked(ctx context.Context, userID, messageID uint) (bool, error)
	ListLiked(ctx context.Context, userID uint, limit, offset int) ([]*models.Message, error)
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetByID loads the message row (cache-aside; message text is immutable so the
// cached copy never goes stale before deletion) and computes the per-request
// like details fresh.
func (r *messageRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	var message models.Message
	err := cache.Aside(ctx, cache.MessageKey(id), &message, cache.MessageTTL, func() error {
		return r.db.WithContext(ctx).Preload("User").First(&message, id).Error
	})
	if err != nil {
		return nil, err
	}

	var likes int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("message_id = ?", id).
		Count(&likes).Error; err != nil {
		return nil, err
	}
	message.LikesCount = int(likes)

	if currentUserID != 0 {
		liked, err := r.IsLiked(ctx, currentUserID, id)
		if err != nil {
			return nil, err
		}
		message.Liked = liked
	}

	return &message, nil
}

func (r *messageRepository) List(ctx context.Context, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

// Delete removes the message and its likes. Runs in a transaction so a
// half-deleted message can never leave orphaned likes behind.
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
	if err == nil {
		cache.InvalidateMessage(ctx, id)
	}
	return err
}

// Like records that userID liked messageID. Liking twice is a no-op.
func (r *messageRepository) Like(ctx context.Context, userID, messageID uint) error {
	like := models.Like{UserID: userID, MessageID: messageID}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		FirstOrCreate(&like).Error
}

func (r *messageRepository) Unlike(ctx context.Context, userID, messageID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
}

func (r *messageRepository) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *messageRepository) ListLiked(ctx context.Context, userID uint, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Select("messages.*").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}
