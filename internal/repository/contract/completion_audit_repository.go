package contract

import (
	"context"

	"ai-copilot-be/internal/entity"
)

type CompletionAuditRepository interface {
	Create(ctx context.Context, audit *entity.CompletionAudit) error
	SummaryByUserId(ctx context.Context, userId string) (*entity.CompletionStats, error)
}
