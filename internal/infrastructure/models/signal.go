package models

import (
	"time"

	"github.com/google/uuid"
)

type Signal struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Payload    string    `gorm:"type:jsonb;not null"`
	IsSpot     bool      `gorm:"not null;default:true"`
	Status     bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time

	// Associations
	Provider User `gorm:"foreignKey:ProviderID"`
}
