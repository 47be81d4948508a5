package config

import (
	"contentcraft-api/internal/models"
)

// QuotaConfig maps subscription tiers to their daily prompt limits.
type QuotaConfig struct {
	Limits map[models.SubscriptionTier]int
}

func NewQuotaConfig() *QuotaConfig {
	return &QuotaConfig{
		Limits: map[models.SubscriptionTier]int{
			models.FreeTier:       5,
			models.ProTier:        1000,
			models.EnterpriseTier: 10000,
		},
	}
}

// LimitFor returns the daily limit for tier. Unrecognized tiers fall
// back to the free limit rather than failing open.
func (c *QuotaConfig) LimitFor(tier models.SubscriptionTier) int {
	if limit, ok := c.Limits[tier]; ok {
		return limit
	}
	return c.Limits[models.FreeTier]
}
