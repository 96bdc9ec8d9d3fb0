package contract

import (
	"context"

	"ai-copilot-be/internal/entity"
)

// ChatSessionRepository is the durable store: one row per session holding the
// full message list.
type ChatSessionRepository interface {
	// Upsert writes the complete session snapshot, replacing any previous one.
	Upsert(ctx context.Context, sessionId, userId string, messages []entity.Message) error
	// FindBySessionId returns (nil, nil) when the session does not exist.
	FindBySessionId(ctx context.Context, sessionId, userId string) (*entity.ChatSession, error)
	ListByUserId(ctx context.Context, userId string, limit, offset int) ([]*entity.ChatSessionSummary, error)
	Delete(ctx context.Context, sessionId, userId string) error
}
