package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat turn. Messages are immutable once written and
// their chronological order is significant.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	UserId    string    `json:"user_id"`
}

// ChatSession is the durable representation of a conversation: the full
// ordered message list persisted as a single record per (session_id, user_id).
type ChatSession struct {
	SessionId    string
	UserId       string
	Messages     []Message
	MessageCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChatSessionSummary is the lightweight row used for the history sidebar.
type ChatSessionSummary struct {
	SessionId    string
	UserId       string
	FirstMessage string
	MessageCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Status       string
}

// CompletionStats aggregates the audit trail for one user.
type CompletionStats struct {
	Total        int64
	CacheHits    int64
	AvgLatencyMs float64
}

// CompletionAudit records one served code completion for usage statistics.
type CompletionAudit struct {
	Id         uuid.UUID
	UserId     string
	Language   string
	Mode       string
	CacheHit   bool
	Confidence float64
	LatencyMs  int64
	CreatedAt  time.Time
}
