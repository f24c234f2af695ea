package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"signals-hub.backend/internal/domain/entities"
)

// UserTokenRepository defines single-use token storage operations.
//
// Create must surface a uniqueness violation on the token value as
// ErrTokenCollision rather than overwriting. ConsumeByID is the
// compare-and-delete primitive behind single-use redemption: it reports
// ErrNotFound when another redeemer already removed the row.
type UserTokenRepository interface {
	Create(ctx context.Context, token *entities.UserToken) error
	GetByValue(ctx context.Context, value string) (*entities.UserToken, error)
	ConsumeByID(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
