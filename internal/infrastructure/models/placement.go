package models

import (
	"time"

	"github.com/google/uuid"
)

type Placement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SignalID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null;default:0"`
	CreatedAt time.Time

	// Associations
	User   User   `gorm:"foreignKey:UserID"`
	Signal Signal `gorm:"foreignKey:SignalID"`
}
