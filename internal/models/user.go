package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated principal extracted from the identity
// provider's bearer token. The identity provider owns authentication;
// a local row is kept so snapshots and usage rows have a join target,
// created lazily the first time a user's entitlement is resolved.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"type:varchar(255)" json:"name,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
