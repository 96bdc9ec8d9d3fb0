package implementation

import (
	"context"
	"errors"

	"ai-copilot-be/internal/constant"
	"ai-copilot-be/internal/entity"
	"ai-copilot-be/internal/mapper"
	"ai-copilot-be/internal/model"
	"ai-copilot-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

// Upsert replaces the whole session snapshot. Flushing the same session twice
// lands on the same row.
func (r *ChatSessionRepositoryImpl) Upsert(ctx context.Context, sessionId, userId string, messages []entity.Message) error {
	m := r.mapper.ChatSessionToModel(sessionId, userId, messages)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"metadata", "updated_at"}),
		}).
		Create(m).Error
}

func (r *ChatSessionRepositoryImpl) FindBySessionId(ctx context.Context, sessionId, userId string) (*entity.ChatSession, error) {
	var m model.ChatSession
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionId, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatSessionToEntity(&m), nil
}

func (r *ChatSessionRepositoryImpl) ListByUserId(ctx context.Context, userId string, limit, offset int) ([]*entity.ChatSessionSummary, error) {
	var models []*model.ChatSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.ChatSessionSummary, len(models))
	for i, m := range models {
		summaries[i] = r.mapper.ChatSessionToSummary(m, constant.SessionStatusArchived)
	}
	return summaries, nil
}

func (r *ChatSessionRepositoryImpl) Delete(ctx context.Context, sessionId, userId string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionId, userId).
		Delete(&model.ChatSession{}).Error
}
