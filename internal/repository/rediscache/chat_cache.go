// Package rediscache holds the Redis-backed hot tier for live conversations.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-copilot-be/internal/entity"
	"ai-copilot-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type ChatCache struct {
	client     *redis.Client
	maxHistory int64
	ttl        time.Duration
}

func NewChatCache(client *redis.Client, maxHistory int, ttl time.Duration) contract.ChatCacheRepository {
	return &ChatCache{
		client:     client,
		maxHistory: int64(maxHistory),
		ttl:        ttl,
	}
}

// chatKey namespaces sessions per user so one user can never read another's
// history through a guessed session id.
func chatKey(userId, sessionId string) string {
	return fmt.Sprintf("chat:%s:%s", userId, sessionId)
}

func (c *ChatCache) Connected(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(pingCtx).Err() == nil
}

// Append pushes one message and in the same transaction re-applies the
// history bound and refreshes the TTL, so a session can never outgrow its
// window between commands.
func (c *ChatCache) Append(ctx context.Context, sessionId, userId string, msg entity.Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	key := chatKey(userId, sessionId)
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, c.maxHistory-1)
	pipe.Expire(ctx, key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Read returns the session oldest-first. The list is stored newest-first
// (LPUSH), so the result is reversed before returning.
func (c *ChatCache) Read(ctx context.Context, sessionId, userId string) ([]entity.Message, error) {
	raws, err := c.client.LRange(ctx, chatKey(userId, sessionId), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]entity.Message, 0, len(raws))
	for i := len(raws) - 1; i >= 0; i-- {
		var msg entity.Message
		if err := json.Unmarshal([]byte(raws[i]), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Replace swaps the cached history wholesale. Messages arrive oldest-first
// and are RPUSHed in reverse so the list keeps its newest-first layout.
func (c *ChatCache) Replace(ctx context.Context, sessionId, userId string, messages []entity.Message, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}

	key := chatKey(userId, sessionId)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	for i := len(messages) - 1; i >= 0; i-- {
		raw, err := json.Marshal(messages[i])
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		pipe.RPush(ctx, key, raw)
	}
	pipe.LTrim(ctx, key, 0, c.maxHistory-1)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *ChatCache) Count(ctx context.Context, sessionId, userId string) (int64, error) {
	return c.client.LLen(ctx, chatKey(userId, sessionId)).Result()
}

func (c *ChatCache) Exists(ctx context.Context, sessionId, userId string) (bool, error) {
	n, err := c.client.Exists(ctx, chatKey(userId, sessionId)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *ChatCache) Delete(ctx context.Context, sessionId, userId string) error {
	return c.client.Del(ctx, chatKey(userId, sessionId)).Err()
}
