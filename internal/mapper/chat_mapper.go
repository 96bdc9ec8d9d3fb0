package mapper

import (
	"encoding/json"
	"strings"

	"ai-copilot-be/internal/entity"
	"ai-copilot-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// sessionMetadata is the jsonb payload stored in chat_sessions.metadata.
type sessionMetadata struct {
	Messages     []entity.Message `json:"messages"`
	MessageCount int              `json:"message_count"`
}

// ChatSessionToEntity decodes the stored metadata defensively: a payload that
// is a double-encoded JSON string is reparsed, and anything else malformed is
// treated as an empty session rather than an error.
func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	meta := decodeMetadata(s.Metadata)

	count := meta.MessageCount
	if count != len(meta.Messages) {
		count = len(meta.Messages)
	}

	return &entity.ChatSession{
		SessionId:    s.SessionId,
		UserId:       s.UserId,
		Messages:     meta.Messages,
		MessageCount: count,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(sessionId, userId string, messages []entity.Message) *model.ChatSession {
	meta := sessionMetadata{
		Messages:     messages,
		MessageCount: len(messages),
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		raw = []byte(`{"messages":[],"message_count":0}`)
	}

	return &model.ChatSession{
		SessionId: sessionId,
		UserId:    userId,
		Metadata:  datatypes.JSON(raw),
	}
}

func (m *ChatMapper) ChatSessionToSummary(s *model.ChatSession, status string) *entity.ChatSessionSummary {
	if s == nil {
		return nil
	}

	meta := decodeMetadata(s.Metadata)

	first := ""
	if len(meta.Messages) > 0 {
		first = meta.Messages[0].Content
		if len(first) > 120 {
			first = first[:120]
		}
		first = strings.ReplaceAll(first, "\n", " ")
	}

	return &entity.ChatSessionSummary{
		SessionId:    s.SessionId,
		UserId:       s.UserId,
		FirstMessage: first,
		MessageCount: len(meta.Messages),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		Status:       status,
	}
}

func decodeMetadata(raw datatypes.JSON) sessionMetadata {
	var meta sessionMetadata
	if len(raw) == 0 {
		return meta
	}

	if err := json.Unmarshal(raw, &meta); err == nil && meta.Messages != nil {
		return meta
	}

	// Older rows stored the payload as a JSON-encoded string.
	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &meta); err == nil && meta.Messages != nil {
			return meta
		}
	}

	return sessionMetadata{}
}
