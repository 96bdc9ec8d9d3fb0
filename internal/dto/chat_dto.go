package dto

import "time"

type ChatRequest struct {
	Text      string `json:"text" validate:"required"`
	SessionId string `json:"session_id" validate:"required"`
	UserId    string `json:"user_id" validate:"required"`
}

type ChatResponse struct {
	Response         string `json:"response"`
	MessageCount     int    `json:"message_count"`
	SessionId        string `json:"session_id"`
	UserId           string `json:"user_id"`
	SessionStatus    string `json:"session_status"`
	InCache          bool   `json:"in_cache"`
	ModelUsed        string `json:"model_used"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

type NewSessionRequest struct {
	UserId string `json:"user_id" validate:"required"`
	// PreviousSessionId, when set, is flushed to the durable store before the
	// new session starts.
	PreviousSessionId string `json:"previous_session_id,omitempty"`
}

type NewSessionResponse struct {
	SessionId     string `json:"session_id"`
	UserId        string `json:"user_id"`
	FlushedCount  int    `json:"flushed_count"`
	SessionStatus string `json:"session_status"`
}

type LoadChatRequest struct {
	SessionId  string `json:"session_id" validate:"required"`
	UserId     string `json:"user_id" validate:"required"`
	TTLSeconds int    `json:"ttl_seconds,omitempty" validate:"omitempty,min=0"`
}

type LoadChatResponse struct {
	SessionId    string     `json:"session_id"`
	UserId       string     `json:"user_id"`
	MessageCount int        `json:"message_count"`
	Status       string     `json:"status"`
	Message      string     `json:"message"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
}

type CloseSessionRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	UserId    string `json:"user_id" validate:"required"`
}

type CloseSessionResponse struct {
	SessionId     string `json:"session_id"`
	UserId        string `json:"user_id"`
	FlushedCount  int    `json:"flushed_count"`
	SessionStatus string `json:"session_status"`
}

type SessionInfo struct {
	SessionId    string    `json:"session_id"`
	FirstMessage string    `json:"first_message"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Status       string    `json:"status"`
}

type ListSessionsResponse struct {
	UserId   string        `json:"user_id"`
	Sessions []SessionInfo `json:"sessions"`
}
