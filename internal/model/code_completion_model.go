package model

import (
	"time"

	"github.com/google/uuid"
)

// CodeCompletion is the audit row written for each served completion.
type CodeCompletion struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     string    `gorm:"type:varchar(50);not null;index"`
	Language   string    `gorm:"type:varchar(32);not null"`
	Mode       string    `gorm:"type:varchar(16);not null"`
	CacheHit   bool      `gorm:"not null"`
	Confidence float64   `gorm:"not null"`
	LatencyMs  int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (CodeCompletion) TableName() string {
	return "code_completions"
}
