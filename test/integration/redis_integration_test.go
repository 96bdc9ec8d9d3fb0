package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"ai-copilot-be/internal/entity"
	"ai-copilot-be/internal/repository/rediscache"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisChatCache(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("Invalid REDIS_URL: %v", err)
	}
	client := redis.NewClient(opts)

	const maxHistory = 5
	cache := rediscache.NewChatCache(client, maxHistory, time.Minute)
	ctx := context.Background()

	assert.True(t, cache.Connected(ctx))

	userId := "integration-" + uuid.NewString()
	sessionId := uuid.NewString()
	defer cache.Delete(ctx, sessionId, userId)

	t.Run("Append Trims And Keeps Order", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			err := cache.Append(ctx, sessionId, userId, entity.Message{
				Role:      "user",
				Content:   fmt.Sprintf("m%d", i),
				Timestamp: time.Now().UTC(),
				UserId:    userId,
			})
			assert.NoError(t, err)
		}

		n, err := cache.Count(ctx, sessionId, userId)
		assert.NoError(t, err)
		assert.Equal(t, int64(maxHistory), n)

		// Oldest-first read, bounded window: m3..m7 survive.
		messages, err := cache.Read(ctx, sessionId, userId)
		assert.NoError(t, err)
		assert.Len(t, messages, maxHistory)
		assert.Equal(t, "m3", messages[0].Content)
		assert.Equal(t, "m7", messages[maxHistory-1].Content)
	})

	t.Run("Replace Swaps History Wholesale", func(t *testing.T) {
		replacement := []entity.Message{
			{Role: "user", Content: "r0", Timestamp: time.Now().UTC(), UserId: userId},
			{Role: "assistant", Content: "r1", Timestamp: time.Now().UTC(), UserId: userId},
		}
		err := cache.Replace(ctx, sessionId, userId, replacement, 0)
		assert.NoError(t, err)

		messages, err := cache.Read(ctx, sessionId, userId)
		assert.NoError(t, err)
		assert.Len(t, messages, 2)
		assert.Equal(t, "r0", messages[0].Content)
		assert.Equal(t, "r1", messages[1].Content)
	})

	t.Run("User Isolation", func(t *testing.T) {
		otherUser := "integration-" + uuid.NewString()
		exists, err := cache.Exists(ctx, sessionId, otherUser)
		assert.NoError(t, err)
		assert.False(t, exists, "another user must not see the session")

		messages, err := cache.Read(ctx, sessionId, otherUser)
		assert.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("Delete", func(t *testing.T) {
		err := cache.Delete(ctx, sessionId, userId)
		assert.NoError(t, err)

		exists, err := cache.Exists(ctx, sessionId, userId)
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}
