package usecases

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/domain/repositories"
)

// GuardUsecase is the authorization gate in front of every privileged
// operation: a pure permission check on the caller's principal, then a
// freshness check of the account's active flag. Callers must keep that
// order; a disabled account must not learn whether its permission would
// have been granted.
type GuardUsecase struct {
	userRepo repositories.UserRepository
}

// NewGuardUsecase creates a new guard usecase
func NewGuardUsecase(userRepo repositories.UserRepository) *GuardUsecase {
	return &GuardUsecase{userRepo: userRepo}
}

// Authorize checks the principal for a required permission. Pure, no I/O.
func (u *GuardUsecase) Authorize(principal *entities.Principal, permission entities.Permission) (uuid.UUID, error) {
	if principal == nil {
		return uuid.Nil, domainerrors.Unauthorized("You are not logged in")
	}
	if !principal.Has(permission) {
		return uuid.Nil, domainerrors.Unauthorized("You are not authorized to access this")
	}
	return principal.UserID, nil
}

// RequireActive loads the user and rejects disabled accounts.
func (u *GuardUsecase) RequireActive(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.NewAppError(http.StatusUnauthorized, "Your account is not active", domainerrors.ErrAccountNotActive)
	}
	return user, nil
}

// Require composes Authorize and RequireActive in the mandatory order
// and returns the loaded user.
func (u *GuardUsecase) Require(ctx context.Context, principal *entities.Principal, permission entities.Permission) (*entities.User, error) {
	userID, err := u.Authorize(principal, permission)
	if err != nil {
		return nil, err
	}
	return u.RequireActive(ctx, userID)
}
