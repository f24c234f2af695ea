package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Username     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(345);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Wallet       *string   `gorm:"type:varchar(42)"`
	IsActive     bool      `gorm:"not null;default:false"`
	Role         string    `gorm:"type:varchar(20);not null;default:'USER';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
