package models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionTier string

const (
	FreeTier       SubscriptionTier = "free"
	ProTier        SubscriptionTier = "pro"
	EnterpriseTier SubscriptionTier = "enterprise"
)

// ParseSubscriptionTier returns the tier for s, or false when s is not
// one of the known tiers.
func ParseSubscriptionTier(s string) (SubscriptionTier, bool) {
	switch SubscriptionTier(s) {
	case FreeTier, ProTier, EnterpriseTier:
		return SubscriptionTier(s), true
	}
	return "", false
}

// SubscriptionSnapshot is the cached, per-user copy of the billing
// provider's subscription state. Exactly one row per user; refreshed by
// upsert on every entitlement check, never deleted.
type SubscriptionSnapshot struct {
	ID               uint             `gorm:"primarykey" json:"-"`
	UserID           uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Email            string           `gorm:"type:varchar(255);not null" json:"email"`
	Subscribed       bool             `gorm:"not null;default:false" json:"subscribed"`
	SubscriptionTier SubscriptionTier `gorm:"type:varchar(20);not null;default:'free'" json:"subscription_tier"`
	SubscriptionEnd  *time.Time       `gorm:"default:null" json:"subscription_end,omitempty"`
	StripeCustomerID *string          `gorm:"type:varchar(255);default:null" json:"stripe_customer_id,omitempty"`
	CreatedAt        time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt        time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (SubscriptionSnapshot) TableName() string {
	return "subscription_snapshots"
}
