package models

import (
	"time"

	"github.com/google/uuid"
)

// UserToken rows are hard-deleted on redemption; soft delete would defeat
// the single-use guarantee.
type UserToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Purpose   string    `gorm:"type:varchar(30);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time

	// Associations
	User User `gorm:"foreignKey:UserID"`
}
