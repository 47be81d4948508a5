package repository

import (
	"context"
	"errors"

	"contentcraft-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errLimitReached = errors.New("usage limit reached")

type UsageRepository interface {
	// GetUsage returns the record for (userID, day), or nil when the
	// user has not generated anything that day.
	GetUsage(ctx context.Context, userID uuid.UUID, day string) (*models.UsageRecord, error)
	// IncrementIfBelow atomically increments the counter for
	// (userID, day) when it is below limit, creating the row on first
	// use. It returns false without mutating anything when the limit
	// is already spent.
	IncrementIfBelow(ctx context.Context, userID uuid.UUID, day string, limit int) (bool, error)
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) GetUsage(ctx context.Context, userID uuid.UUID, day string) (*models.UsageRecord, error) {
	var usage models.UsageRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND usage_date = ?", userID, day).
		First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

// The check and the increment run inside one transaction with the row
// locked, so two concurrent requests cannot both observe a
// pre-increment count and overshoot the limit.
func (r *usageRepository) IncrementIfBelow(ctx context.Context, userID uuid.UUID, day string, limit int) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var usage models.UsageRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND usage_date = ?", userID, day).
			First(&usage).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			if limit <= 0 {
				return errLimitReached
			}
			usage = models.UsageRecord{
				UserID:      userID,
				UsageDate:   day,
				PromptsUsed: 1,
			}
			// ON CONFLICT guards against a concurrent first-use insert.
			return tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "usage_date"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"prompts_used": gorm.Expr("usage_tracking.prompts_used + 1"),
				}),
			}).Create(&usage).Error
		}

		if err != nil {
			return err
		}

		if usage.PromptsUsed >= limit {
			return errLimitReached
		}

		return tx.Model(&models.UsageRecord{}).
			Where("id = ?", usage.ID).
			UpdateColumn("prompts_used", gorm.Expr("prompts_used + 1")).Error
	})

	if errors.Is(err, errLimitReached) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
