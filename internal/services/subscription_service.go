package services

import (
	"context"
	"errors"
	"time"

	"contentcraft-api/internal/logger"
	"contentcraft-api/internal/models"
	apperrors "contentcraft-api/internal/pkg/errors"
	"contentcraft-api/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Plan prices in minor units, as configured at the billing provider.
const (
	ProPlanAmount        int64 = 1900
	EnterprisePlanAmount int64 = 9900
)

const snapshotCacheTTL = 15 * time.Minute

func snapshotCacheKey(userID uuid.UUID) string {
	return "snapshot:" + userID.String()
}

// TierForAmount maps a subscription's unit price to a tier. Unknown
// paid amounts resolve to pro: a paying customer on an unrecognized
// price keeps paid access rather than being rejected.
func TierForAmount(amount int64) models.SubscriptionTier {
	switch amount {
	case ProPlanAmount:
		return models.ProTier
	case EnterprisePlanAmount:
		return models.EnterpriseTier
	default:
		return models.ProTier
	}
}

// SubscriptionService reconciles the local subscription snapshot with
// the billing provider's state.
type SubscriptionService interface {
	// Refresh queries the billing provider for the user's current
	// subscription, persists a fresh snapshot and returns it. On any
	// provider or storage error nothing is written and the error
	// surfaces to the caller - no partial snapshot, no silent
	// fallback to a stale one.
	Refresh(ctx context.Context, user *models.User) (*models.SubscriptionSnapshot, error)
}

type subscriptionService struct {
	billing      BillingProvider
	snapshotRepo repository.SnapshotRepository
	userRepo     repository.UserRepository
	cache        CacheService
}

// NewSubscriptionService wires the resolver. cache may be nil; snapshot
// caching is then skipped.
func NewSubscriptionService(
	billing BillingProvider,
	snapshotRepo repository.SnapshotRepository,
	userRepo repository.UserRepository,
	cache CacheService,
) SubscriptionService {
	return &subscriptionService{
		billing:      billing,
		snapshotRepo: snapshotRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

func (s *subscriptionService) Refresh(ctx context.Context, user *models.User) (*models.SubscriptionSnapshot, error) {
	if err := s.ensureLocalUser(ctx, user); err != nil {
		return nil, err
	}

	cust, err := s.billing.FindCustomerByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	snapshot := &models.SubscriptionSnapshot{
		UserID:           user.ID,
		Email:            user.Email,
		Subscribed:       false,
		SubscriptionTier: models.FreeTier,
	}

	if cust == nil {
		if err := s.persistSnapshot(ctx, snapshot); err != nil {
			return nil, err
		}
		logger.LogEvent(logrus.InfoLevel, "No billing customer, persisted unsubscribed snapshot", logrus.Fields{
			"user_id": user.ID,
		})
		return snapshot, nil
	}

	snapshot.StripeCustomerID = &cust.ID

	subscription, err := s.billing.ActiveSubscriptionForCustomer(ctx, cust.ID)
	if err != nil {
		return nil, err
	}

	if subscription != nil {
		end := subscription.CurrentPeriodEnd
		snapshot.Subscribed = true
		snapshot.SubscriptionTier = TierForAmount(subscription.UnitAmount)
		snapshot.SubscriptionEnd = &end
	}

	if err := s.persistSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	logger.LogEvent(logrus.InfoLevel, "Subscription snapshot refreshed", logrus.Fields{
		"user_id":    user.ID,
		"subscribed": snapshot.Subscribed,
		"tier":       snapshot.SubscriptionTier,
	})
	return snapshot, nil
}

// ensureLocalUser lazily creates the local user row that snapshots and
// usage records join against. The identity provider remains the source
// of truth for the principal itself.
func (s *subscriptionService) ensureLocalUser(ctx context.Context, user *models.User) error {
	_, err := s.userRepo.GetByID(ctx, user.ID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return s.userRepo.Create(ctx, &models.User{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		})
	}
	return err
}

// persistSnapshot writes the snapshot and best-effort caches it for the
// quota path. A cache failure is logged, never surfaced.
func (s *subscriptionService) persistSnapshot(ctx context.Context, snapshot *models.SubscriptionSnapshot) error {
	if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snapshotCacheKey(snapshot.UserID), snapshot, snapshotCacheTTL); err != nil {
			logger.LogEvent(logrus.WarnLevel, "Snapshot cache write failed", logrus.Fields{
				"user_id": snapshot.UserID,
				"error":   err.Error(),
			})
		}
	}
	return nil
}
