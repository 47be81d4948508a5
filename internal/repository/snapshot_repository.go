package repository

import (
	"context"
	"errors"
	"time"

	"contentcraft-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSnapshotNotFound = errors.New("subscription snapshot not found")

type SnapshotRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.SubscriptionSnapshot, error)
	// Upsert writes snapshot keyed by user_id, overwriting any prior
	// snapshot for that user. Snapshots are never deleted.
	Upsert(ctx context.Context, snapshot *models.SubscriptionSnapshot) error
}

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.SubscriptionSnapshot, error) {
	var snapshot models.SubscriptionSnapshot
	err := r.db.WithContext(ctx).
		First(&snapshot, "user_id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) Upsert(ctx context.Context, snapshot *models.SubscriptionSnapshot) error {
	snapshot.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email",
			"subscribed",
			"subscription_tier",
			"subscription_end",
			"stripe_customer_id",
			"updated_at",
		}),
	}).Create(snapshot).Error
}
