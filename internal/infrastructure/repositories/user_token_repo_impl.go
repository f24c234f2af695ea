package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/infrastructure/models"
	"signals-hub.backend/pkg/utils"
)

// UserTokenRepository implements single-use token storage
type UserTokenRepository struct {
	db *gorm.DB
}

// NewUserTokenRepository creates a new user token repository
func NewUserTokenRepository(db *gorm.DB) *UserTokenRepository {
	return &UserTokenRepository{db: db}
}

// Create persists a token row. A collision on the unique token value is
// reported as ErrTokenCollision so the caller can retry with a fresh value.
func (r *UserTokenRepository) Create(ctx context.Context, token *entities.UserToken) error {
	if token.ID == uuid.Nil {
		token.ID = utils.GenerateUUIDv7()
	}
	m := &models.UserToken{
		ID:        token.ID,
		UserID:    token.UserID,
		Token:     token.Token,
		Purpose:   string(token.Purpose),
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrTokenCollision
		}
		return err
	}
	return nil
}

// GetByValue looks up a token row by its opaque value
func (r *UserTokenRepository) GetByValue(ctx context.Context, value string) (*entities.UserToken, error) {
	var m models.UserToken
	if err := r.db.WithContext(ctx).Where("token = ?", value).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.UserToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		Purpose:   entities.TokenPurpose(m.Purpose),
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

// ConsumeByID deletes the token row by primary key. Of N concurrent
// callers exactly one observes RowsAffected == 1; the rest get
// ErrNotFound. This is the compare-and-delete that makes redemption
// at-most-once.
func (r *UserTokenRepository) ConsumeByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserToken{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteExpired removes token rows whose expiry passed before the given
// instant. Storage hygiene only; expired tokens already fail redemption.
func (r *UserTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.UserToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
