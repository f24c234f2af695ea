package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/domain/repositories"
	"signals-hub.backend/pkg/crypto"
	"signals-hub.backend/pkg/metrics"
)

// TokenRegistryUsecase issues and redeems the single-use tokens behind
// account activation and password reset.
type TokenRegistryUsecase struct {
	tokenRepo repositories.UserTokenRepository
	userRepo  repositories.UserRepository
	now       func() time.Time
}

// NewTokenRegistryUsecase creates a new token registry usecase
func NewTokenRegistryUsecase(
	tokenRepo repositories.UserTokenRepository,
	userRepo repositories.UserRepository,
) *TokenRegistryUsecase {
	return &TokenRegistryUsecase{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// Issue generates a crypto-random opaque token bound to the user and
// purpose, valid for ttl. A value collision on the store's unique index
// surfaces as ErrTokenCollision; the caller may retry with a fresh call.
func (u *TokenRegistryUsecase) Issue(ctx context.Context, userID uuid.UUID, purpose entities.TokenPurpose, ttl time.Duration) (string, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}

	value, err := crypto.GenerateOpaqueToken()
	if err != nil {
		return "", err
	}

	token := &entities.UserToken{
		UserID:    userID,
		Token:     value,
		Purpose:   purpose,
		ExpiresAt: u.now().Add(ttl),
		CreatedAt: u.now(),
	}
	if err := u.tokenRepo.Create(ctx, token); err != nil {
		return "", err
	}
	return value, nil
}

// Redeem consumes a token and returns the bound user id. The token row
// is deleted on the first successful redemption; a concurrent redeemer
// that loses the delete race observes ErrNotFound. Expired rows are
// removed during the attempt and reported as ErrTokenExpired. A purpose
// mismatch is indistinguishable from a missing token and does not
// consume the row.
func (u *TokenRegistryUsecase) Redeem(ctx context.Context, value string, purpose entities.TokenPurpose) (uuid.UUID, error) {
	token, err := u.tokenRepo.GetByValue(ctx, value)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.ObserveRedemption(string(purpose), "not_found")
		} else {
			metrics.ObserveRedemption(string(purpose), "error")
		}
		return uuid.Nil, err
	}

	if token.Purpose != purpose {
		metrics.ObserveRedemption(string(purpose), "not_found")
		return uuid.Nil, domainerrors.ErrNotFound
	}

	if token.Expired(u.now()) {
		// Remove the stale row; losing this race to another redeemer
		// changes nothing, both report expiry.
		if err := u.tokenRepo.ConsumeByID(ctx, token.ID); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			metrics.ObserveRedemption(string(purpose), "error")
			return uuid.Nil, err
		}
		metrics.ObserveRedemption(string(purpose), "expired")
		return uuid.Nil, domainerrors.ErrTokenExpired
	}

	// Compare-and-delete: exactly one concurrent redeemer sees the row
	// deleted by its own call.
	if err := u.tokenRepo.ConsumeByID(ctx, token.ID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.ObserveRedemption(string(purpose), "not_found")
		} else {
			metrics.ObserveRedemption(string(purpose), "error")
		}
		return uuid.Nil, err
	}

	metrics.ObserveRedemption(string(purpose), "redeemed")
	return token.UserID, nil
}
