package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ai-copilot-be/internal/config"
	"ai-copilot-be/internal/constant"
	"ai-copilot-be/internal/dto"
	"ai-copilot-be/internal/entity"
	"ai-copilot-be/internal/pkg/logger"
	"ai-copilot-be/internal/repository/contract"
	"ai-copilot-be/pkg/llm"

	"github.com/google/uuid"
)

// IChatService owns the session lifecycle: live messages ride the cache tier,
// closed sessions are flushed to the database as a single snapshot, and old
// sessions can be hydrated back into the cache.
type IChatService interface {
	ProcessChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	StoreMessage(ctx context.Context, sessionId, userId, role, content string) bool
	GetChatHistory(ctx context.Context, sessionId, userId string) []entity.Message
	GetMessageCount(ctx context.Context, sessionId, userId string) int
	FlushSessionToDB(ctx context.Context, sessionId, userId string, clearCache bool, reason string) (int, error)
	LoadSessionToCache(ctx context.Context, request *dto.LoadChatRequest) (*dto.LoadChatResponse, error)
	NewSession(ctx context.Context, request *dto.NewSessionRequest) (*dto.NewSessionResponse, error)
	CloseSession(ctx context.Context, request *dto.CloseSessionRequest) (*dto.CloseSessionResponse, error)
	ListUserSessions(ctx context.Context, userId string, limit, offset int) (*dto.ListSessionsResponse, error)
}

type chatService struct {
	sessionRepo contract.ChatSessionRepository
	cacheRepo   contract.ChatCacheRepository
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	cfg         config.ChatConfig
	modelName   string

	// flushLocks serializes flushes per session. Without it a close racing a
	// new-session switch can flush the same cache list twice and clear it
	// while the other flush is mid-read.
	flushMu    sync.Mutex
	flushLocks map[string]*sync.Mutex
}

func NewChatService(
	sessionRepo contract.ChatSessionRepository,
	cacheRepo contract.ChatCacheRepository,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
	cfg config.ChatConfig,
	modelName string,
) IChatService {
	return &chatService{
		sessionRepo: sessionRepo,
		cacheRepo:   cacheRepo,
		llmProvider: llmProvider,
		logger:      log,
		cfg:         cfg,
		modelName:   modelName,
		flushLocks:  make(map[string]*sync.Mutex),
	}
}

func (s *chatService) flushLock(sessionId, userId string) *sync.Mutex {
	key := userId + ":" + sessionId
	s.flushMu.Lock()
	defer s.flushMu.Unlock()
	mu, ok := s.flushLocks[key]
	if !ok {
		mu = &sync.Mutex{}
		s.flushLocks[key] = mu
	}
	return mu
}

// StoreMessage writes to the cache tier only. Persistence happens on explicit
// flush, never during the live conversation. Returns false instead of an
// error: a dropped message must not fail the chat turn.
func (s *chatService) StoreMessage(ctx context.Context, sessionId, userId, role, content string) bool {
	if !s.cacheRepo.Connected(ctx) {
		return false
	}

	msg := entity.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
		UserId:    userId,
	}
	if err := s.cacheRepo.Append(ctx, sessionId, userId, msg); err != nil {
		s.logger.Error("ChatService", "Failed to store message", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return false
	}
	return true
}

// GetChatHistory reads through: cache first, database fallback. An empty
// cache read is a miss, not an empty session — a flushed or expired session
// still has its durable copy. The fallback never writes back to the cache;
// hydration is an explicit operation.
func (s *chatService) GetChatHistory(ctx context.Context, sessionId, userId string) []entity.Message {
	if s.cacheRepo.Connected(ctx) {
		messages, err := s.cacheRepo.Read(ctx, sessionId, userId)
		if err == nil && len(messages) > 0 {
			return messages
		}
		if err != nil {
			s.logger.Warn("ChatService", "Cache read failed, falling back to DB", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	session, err := s.sessionRepo.FindBySessionId(ctx, sessionId, userId)
	if err != nil {
		s.logger.Warn("ChatService", "DB fallback for history failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return []entity.Message{}
	}
	if session == nil {
		return []entity.Message{}
	}
	return session.Messages
}

func (s *chatService) GetMessageCount(ctx context.Context, sessionId, userId string) int {
	if !s.cacheRepo.Connected(ctx) {
		return 0
	}
	n, err := s.cacheRepo.Count(ctx, sessionId, userId)
	if err != nil {
		s.logger.Error("ChatService", "Failed to count messages", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return 0
	}
	return int(n)
}

// ProcessChat runs one conversational turn: windowed history plus the new
// user message go to the model, then both sides of the exchange are cached.
func (s *chatService) ProcessChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	start := time.Now()

	history := s.GetChatHistory(ctx, request.SessionId, request.UserId)
	modelMsgs := s.buildContextWindow(history)
	modelMsgs = append(modelMsgs, llm.Message{Role: constant.ChatMessageRoleUser, Content: request.Text})

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	aiText, err := s.llmProvider.Chat(genCtx, modelMsgs,
		llm.WithTemperature(s.cfg.Temperature),
		llm.WithMaxTokens(s.cfg.MaxTokens),
	)
	if err != nil {
		s.logger.Error("ChatService", "Chat generation failed", map[string]interface{}{
			"session_id": request.SessionId,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("chat generation failed: %w", err)
	}

	inCache := s.StoreMessage(ctx, request.SessionId, request.UserId, constant.ChatMessageRoleUser, request.Text)
	s.StoreMessage(ctx, request.SessionId, request.UserId, constant.ChatMessageRoleAssistant, aiText)

	return &dto.ChatResponse{
		Response:         aiText,
		MessageCount:     s.GetMessageCount(ctx, request.SessionId, request.UserId),
		SessionId:        request.SessionId,
		UserId:           request.UserId,
		SessionStatus:    constant.SessionStatusActive,
		InCache:          inCache,
		ModelUsed:        s.modelName,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// buildContextWindow reduces the stored history to what the model sees.
// The chronological policy keeps the last K messages as-is; the pairs policy
// keeps the last N user/assistant pairs plus the most recent system messages.
func (s *chatService) buildContextWindow(history []entity.Message) []llm.Message {
	var kept []entity.Message

	switch s.cfg.ContextPolicy {
	case constant.ContextPolicyPairs:
		var system, dialog []entity.Message
		for _, m := range history {
			if m.Content == "" {
				continue
			}
			switch m.Role {
			case constant.ChatMessageRoleSystem:
				system = append(system, m)
			case constant.ChatMessageRoleUser, constant.ChatMessageRoleAssistant:
				dialog = append(dialog, m)
			}
		}
		if n := s.cfg.ContextPairs * 2; n > 0 && len(dialog) > n {
			dialog = dialog[len(dialog)-n:]
		} else if n <= 0 {
			dialog = nil
		}
		if n := s.cfg.SystemContext; n > 0 && len(system) > n {
			system = system[len(system)-n:]
		} else if n <= 0 {
			system = nil
		}
		kept = append(kept, system...)
		kept = append(kept, dialog...)
	default:
		kept = history
		if k := s.cfg.ContextLastK; k > 0 && len(kept) > k {
			kept = kept[len(kept)-k:]
		}
	}

	modelMsgs := make([]llm.Message, 0, len(kept)+1)
	for _, m := range kept {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		modelMsgs = append(modelMsgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	return modelMsgs
}

// FlushSessionToDB moves the cached session into the database as one row.
// Flushing an empty or missing session is a no-op that reports zero. The
// cache is only cleared after the write succeeds.
func (s *chatService) FlushSessionToDB(ctx context.Context, sessionId, userId string, clearCache bool, reason string) (int, error) {
	mu := s.flushLock(sessionId, userId)
	mu.Lock()
	defer mu.Unlock()

	var messages []entity.Message
	if s.cacheRepo.Connected(ctx) {
		var err error
		messages, err = s.cacheRepo.Read(ctx, sessionId, userId)
		if err != nil {
			return 0, fmt.Errorf("read cached session: %w", err)
		}
	}

	if len(messages) == 0 {
		return 0, nil
	}

	if err := s.sessionRepo.Upsert(ctx, sessionId, userId, messages); err != nil {
		s.logger.Error("ChatService", "Failed to flush session", map[string]interface{}{
			"session_id": sessionId,
			"reason":     reason,
			"error":      err.Error(),
		})
		return 0, fmt.Errorf("persist session: %w", err)
	}

	if clearCache {
		if err := s.cacheRepo.Delete(ctx, sessionId, userId); err != nil {
			s.logger.Warn("ChatService", "Session persisted but cache clear failed", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	s.logger.Info("ChatService", "Session flushed to DB", map[string]interface{}{
		"session_id":    sessionId,
		"message_count": len(messages),
		"reason":        reason,
	})
	return len(messages), nil
}

// LoadSessionToCache hydrates an archived session back into the cache,
// replacing whatever the cache currently holds for that session.
func (s *chatService) LoadSessionToCache(ctx context.Context, request *dto.LoadChatRequest) (*dto.LoadChatResponse, error) {
	session, err := s.sessionRepo.FindBySessionId(ctx, request.SessionId, request.UserId)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return &dto.LoadChatResponse{
			SessionId:    request.SessionId,
			UserId:       request.UserId,
			MessageCount: 0,
			Status:       constant.SessionStatusLoaded,
			Message:      "No session found",
		}, nil
	}

	ttl := time.Duration(request.TTLSeconds) * time.Second
	if err := s.cacheRepo.Replace(ctx, request.SessionId, request.UserId, session.Messages, ttl); err != nil {
		return nil, fmt.Errorf("hydrate cache: %w", err)
	}

	updatedAt := session.UpdatedAt
	return &dto.LoadChatResponse{
		SessionId:    request.SessionId,
		UserId:       request.UserId,
		MessageCount: len(session.Messages),
		Status:       constant.SessionStatusLoaded,
		Message:      "Session loaded to cache",
		LastUpdated:  &updatedAt,
	}, nil
}

// NewSession mints a fresh session id, optionally flushing the previous one
// first so switching conversations never loses the old transcript.
func (s *chatService) NewSession(ctx context.Context, request *dto.NewSessionRequest) (*dto.NewSessionResponse, error) {
	flushed := 0
	if request.PreviousSessionId != "" {
		n, err := s.FlushSessionToDB(ctx, request.PreviousSessionId, request.UserId, true, constant.FlushReasonSwitchToNew)
		if err != nil {
			return nil, err
		}
		flushed = n
	}

	return &dto.NewSessionResponse{
		SessionId:     newSessionId(),
		UserId:        request.UserId,
		FlushedCount:  flushed,
		SessionStatus: constant.SessionStatusActive,
	}, nil
}

// newSessionId mints a "{timestamp}-{uuid}" id. The timestamp prefix keeps
// session ids sortable by creation time.
func newSessionId() string {
	return time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()
}

func (s *chatService) CloseSession(ctx context.Context, request *dto.CloseSessionRequest) (*dto.CloseSessionResponse, error) {
	flushed, err := s.FlushSessionToDB(ctx, request.SessionId, request.UserId, true, constant.FlushReasonUserClose)
	if err != nil {
		return nil, err
	}

	return &dto.CloseSessionResponse{
		SessionId:     request.SessionId,
		UserId:        request.UserId,
		FlushedCount:  flushed,
		SessionStatus: constant.SessionStatusArchived,
	}, nil
}

func (s *chatService) ListUserSessions(ctx context.Context, userId string, limit, offset int) (*dto.ListSessionsResponse, error) {
	if limit <= 0 {
		limit = 30
	}

	summaries, err := s.sessionRepo.ListByUserId(ctx, userId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]dto.SessionInfo, len(summaries))
	for i, sum := range summaries {
		sessions[i] = dto.SessionInfo{
			SessionId:    sum.SessionId,
			FirstMessage: sum.FirstMessage,
			MessageCount: sum.MessageCount,
			CreatedAt:    sum.CreatedAt,
			UpdatedAt:    sum.UpdatedAt,
			Status:       sum.Status,
		}
	}

	return &dto.ListSessionsResponse{
		UserId:   userId,
		Sessions: sessions,
	}, nil
}
