package implementation

import (
	"context"

	"ai-copilot-be/internal/entity"
	"ai-copilot-be/internal/model"
	"ai-copilot-be/internal/repository/contract"

	"gorm.io/gorm"
)

type CompletionAuditRepositoryImpl struct {
	db *gorm.DB
}

func NewCompletionAuditRepository(db *gorm.DB) contract.CompletionAuditRepository {
	return &CompletionAuditRepositoryImpl{db: db}
}

func (r *CompletionAuditRepositoryImpl) Create(ctx context.Context, audit *entity.CompletionAudit) error {
	m := &model.CodeCompletion{
		UserId:     audit.UserId,
		Language:   audit.Language,
		Mode:       audit.Mode,
		CacheHit:   audit.CacheHit,
		Confidence: audit.Confidence,
		LatencyMs:  audit.LatencyMs,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	audit.Id = m.Id
	audit.CreatedAt = m.CreatedAt
	return nil
}

func (r *CompletionAuditRepositoryImpl) SummaryByUserId(ctx context.Context, userId string) (*entity.CompletionStats, error) {
	var stats entity.CompletionStats
	err := r.db.WithContext(ctx).
		Model(&model.CodeCompletion{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE cache_hit) AS cache_hits, COALESCE(AVG(latency_ms), 0) AS avg_latency_ms").
		Where("user_id = ?", userId).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
