package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	MessageKeyPrefix = "message:%d"
)

const (
	UserTTL    = 5 * time.Minute
	MessageTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func MessageKey(messageID uint) string {
	return fmt.Sprintf(MessageKeyPrefix, messageID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateMessage(ctx context.Context, messageID uint) {
	Invalidate(ctx, MessageKey(messageID))
}
