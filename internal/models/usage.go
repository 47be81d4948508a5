package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord counts granted generation requests for one user on one
// UTC calendar day. The (user_id, usage_date) pair is unique; a missing
// row means zero prompts used. Counts are never decremented - a new day
// simply starts a new row.
type UsageRecord struct {
	ID          uint      `gorm:"primarykey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_date"`
	UsageDate   string    `gorm:"type:date;not null;uniqueIndex:idx_usage_user_date"`
	PromptsUsed int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UsageRecord) TableName() string {
	return "usage_tracking"
}

// UsageDay formats t as the UTC calendar day used as the usage key.
func UsageDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
