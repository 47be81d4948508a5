package services

import (
	"context"
	"encoding/json"
	"time"

	"contentcraft-api/internal/config"
	"contentcraft-api/internal/logger"
	"contentcraft-api/internal/models"
	"contentcraft-api/internal/repository"

	"github.com/sirupsen/logrus"
)

// QuotaService gates every generation request against the user's
// tier-derived daily limit.
type QuotaService interface {
	// CheckAndReserve consumes one quota slot for today when the user
	// is below their limit. Denials never mutate the usage record.
	CheckAndReserve(ctx context.Context, user *models.User) bool
	CurrentUsage(ctx context.Context, user *models.User) (*UsageStats, error)
}

type UsageStats struct {
	PromptsUsed int `json:"prompts_used"`
	Limit       int `json:"limit"`
}

type quotaService struct {
	usageRepo    repository.UsageRepository
	snapshotRepo repository.SnapshotRepository
	cache        CacheService
	quotaConfig  *config.QuotaConfig
}

// NewQuotaService wires the ledger. cache may be nil; the tier lookup
// then always reads the snapshot store.
func NewQuotaService(
	usageRepo repository.UsageRepository,
	snapshotRepo repository.SnapshotRepository,
	cache CacheService,
	quotaConfig *config.QuotaConfig,
) QuotaService {
	return &quotaService{
		usageRepo:    usageRepo,
		snapshotRepo: snapshotRepo,
		cache:        cache,
		quotaConfig:  quotaConfig,
	}
}

func (s *quotaService) CheckAndReserve(ctx context.Context, user *models.User) bool {
	day := models.UsageDay(time.Now())
	limit := s.dailyLimit(ctx, user)

	granted, err := s.usageRepo.IncrementIfBelow(ctx, user.ID, day, limit)
	if err != nil {
		// Fail closed: a broken usage store must not turn into
		// unbounded free generation.
		logger.LogEvent(logrus.ErrorLevel, "Quota check failed, denying request", logrus.Fields{
			"user_id": user.ID,
			"date":    day,
			"error":   err.Error(),
		})
		return false
	}

	if !granted {
		logger.LogEvent(logrus.InfoLevel, "Quota exceeded", logrus.Fields{
			"user_id": user.ID,
			"date":    day,
			"limit":   limit,
		})
	}
	return granted
}

func (s *quotaService) CurrentUsage(ctx context.Context, user *models.User) (*UsageStats, error) {
	day := models.UsageDay(time.Now())

	usage, err := s.usageRepo.GetUsage(ctx, user.ID, day)
	if err != nil {
		return nil, err
	}

	stats := &UsageStats{Limit: s.dailyLimit(ctx, user)}
	if usage != nil {
		stats.PromptsUsed = usage.PromptsUsed
	}
	return stats, nil
}

// dailyLimit resolves the limit from the user's subscription snapshot,
// preferring the cached copy written by the last entitlement refresh.
// A missing or unreadable snapshot resolves to the free limit.
func (s *quotaService) dailyLimit(ctx context.Context, user *models.User) int {
	if tier, ok := s.cachedTier(ctx, user); ok {
		return s.quotaConfig.LimitFor(tier)
	}

	snapshot, err := s.snapshotRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return s.quotaConfig.LimitFor(models.FreeTier)
	}
	return s.quotaConfig.LimitFor(snapshot.SubscriptionTier)
}

func (s *quotaService) cachedTier(ctx context.Context, user *models.User) (models.SubscriptionTier, bool) {
	if s.cache == nil {
		return "", false
	}

	raw, err := s.cache.Get(ctx, snapshotCacheKey(user.ID))
	if err != nil {
		return "", false
	}

	var snapshot models.SubscriptionSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return "", false
	}
	return snapshot.SubscriptionTier, true
}
