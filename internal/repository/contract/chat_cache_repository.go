package contract

import (
	"context"
	"time"

	"ai-copilot-be/internal/entity"
)

// ChatCacheRepository is the cache-resident store for live conversations.
// Messages are kept per (userId, sessionId) in chronological order, bounded
// by a max history and a TTL refreshed on every append.
type ChatCacheRepository interface {
	// Connected reports whether the cache is reachable right now.
	Connected(ctx context.Context) bool
	Append(ctx context.Context, sessionId, userId string, msg entity.Message) error
	// Read returns the messages oldest-first. A missing session reads as empty.
	Read(ctx context.Context, sessionId, userId string) ([]entity.Message, error)
	// Replace atomically swaps the cached history for the given one. A ttl of
	// zero uses the configured default.
	Replace(ctx context.Context, sessionId, userId string, messages []entity.Message, ttl time.Duration) error
	Count(ctx context.Context, sessionId, userId string) (int64, error)
	Exists(ctx context.Context, sessionId, userId string) (bool, error)
	Delete(ctx context.Context, sessionId, userId string) error
}
