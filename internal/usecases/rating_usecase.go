package usecases

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/domain/repositories"
	"signals-hub.backend/pkg/utils"
)

// RatingUsecase handles placements and the provider reputation score
type RatingUsecase struct {
	placementRepo repositories.PlacementRepository
	signalRepo    repositories.SignalRepository
	guard         *GuardUsecase
}

// NewRatingUsecase creates a new rating usecase
func NewRatingUsecase(
	placementRepo repositories.PlacementRepository,
	signalRepo repositories.SignalRepository,
	guard *GuardUsecase,
) *RatingUsecase {
	return &RatingUsecase{
		placementRepo: placementRepo,
		signalRepo:    signalRepo,
		guard:         guard,
	}
}

// PlaceSignal records that the consumer acted on a signal. The placement
// starts unrated; a consumer holds at most one placement per signal.
func (u *RatingUsecase) PlaceSignal(ctx context.Context, principal *entities.Principal, signalID uuid.UUID) (*entities.Placement, error) {
	user, err := u.guard.Require(ctx, principal, entities.PermissionUser)
	if err != nil {
		return nil, err
	}

	signal, err := u.signalRepo.GetByID(ctx, signalID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("The signal does not exist")
		}
		return nil, err
	}
	if !signal.Status {
		return nil, domainerrors.Forbidden("The signal is no longer active")
	}

	existing, err := u.placementRepo.GetByUserAndSignal(ctx, user.ID, signalID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.Conflict("You already placed this signal")
	}

	placement := &entities.Placement{
		UserID:    user.ID,
		SignalID:  signalID,
		Rating:    entities.RatingUnset,
		CreatedAt: time.Now(),
	}
	if err := u.placementRepo.Create(ctx, placement); err != nil {
		return nil, err
	}
	return placement, nil
}

// RatePlacement sets the rating on one of the consumer's placements.
// The bound is re-validated on every mutation, not only on creation.
func (u *RatingUsecase) RatePlacement(ctx context.Context, principal *entities.Principal, placementID uuid.UUID, rating int) error {
	user, err := u.guard.Require(ctx, principal, entities.PermissionUser)
	if err != nil {
		return err
	}

	if rating < entities.RatingMin || rating > entities.RatingMax {
		return domainerrors.BadRequest("Rating must be between 1 and 5")
	}

	placement, err := u.placementRepo.GetByID(ctx, placementID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("The placement does not exist")
		}
		return err
	}
	if placement.UserID != user.ID {
		return domainerrors.Forbidden("You can only rate your own placements")
	}

	return u.placementRepo.UpdateRating(ctx, placementID, rating)
}

// ListPlacements lists the consumer's placements
func (u *RatingUsecase) ListPlacements(ctx context.Context, principal *entities.Principal, pagination utils.PaginationParams) ([]*entities.Placement, int64, error) {
	user, err := u.guard.Require(ctx, principal, entities.PermissionUser)
	if err != nil {
		return nil, 0, err
	}
	return u.placementRepo.ListByUser(ctx, user.ID, pagination)
}

// ComputeProviderRating reduces every rated placement on the provider's
// signals to one arithmetic mean in [0,5]. Unrated (zero) placements are
// excluded from numerator and denominator; a provider with no rated
// placements scores exactly 0. The result is rounded to two decimals,
// half away from zero. Read-only and order-independent.
func (u *RatingUsecase) ComputeProviderRating(ctx context.Context, providerID uuid.UUID) (float64, error) {
	ratings, err := u.placementRepo.RatingsForProvider(ctx, providerID)
	if err != nil {
		return 0, err
	}

	total, count := 0, 0
	for _, rating := range ratings {
		if rating < entities.RatingMin || rating > entities.RatingMax {
			continue
		}
		total += rating
		count++
	}
	if count == 0 {
		return 0, nil
	}

	mean := float64(total) / float64(count)
	return math.Round(mean*100) / 100, nil
}
