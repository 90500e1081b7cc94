package cache

import (
	"context"
	"testing"
	"time"

	"warbler/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})

	return mr
}

func TestAsideFetchesOnceAndCaches(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *models.Message) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Text = "cached text"
			return nil
		}
	}

	var first models.Message
	require.NoError(t, Aside(ctx, MessageKey(7), &first, MessageTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "cached text", first.Text)

	var second models.Message
	require.NoError(t, Aside(ctx, MessageKey(7), &second, MessageTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should come from cache")
	assert.Equal(t, "cached text", second.Text)
}

func TestAsideWithoutClientCallsFetch(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var msg models.Message
	err := Aside(ctx, MessageKey(1), &msg, MessageTTL, func() error {
		msg.Text = "direct"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", msg.Text)
}

func TestInvalidateMessageForcesRefetch(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var msg models.Message
	require.NoError(t, Aside(ctx, MessageKey(3), &msg, MessageTTL, func() error {
		msg.ID = 3
		msg.Text = "stale soon"
		return nil
	}))
	require.True(t, mr.Exists(MessageKey(3)))

	InvalidateMessage(ctx, 3)
	assert.False(t, mr.Exists(MessageKey(3)))
}

func TestSetJSONHonorsTTL(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	user := models.User{ID: 9, Username: "ttluser"}
	require.NoError(t, SetJSON(ctx, UserKey(9), user, UserTTL))
	require.True(t, mr.Exists(UserKey(9)))

	mr.FastForward(UserTTL + time.Second)

	var out models.User
	found, err := GetJSON(ctx, UserKey(9), &out)
	require.NoError(t, err)
	assert.False(t, found)
}
