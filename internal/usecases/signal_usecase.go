package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/domain/repositories"
	"signals-hub.backend/pkg/utils"
)

// SignalUsecase handles provider-side signal publishing and the
// provider's payout wallet
type SignalUsecase struct {
	signalRepo repositories.SignalRepository
	userRepo   repositories.UserRepository
	guard      *GuardUsecase
	rating     *RatingUsecase
}

// NewSignalUsecase creates a new signal usecase
func NewSignalUsecase(
	signalRepo repositories.SignalRepository,
	userRepo repositories.UserRepository,
	guard *GuardUsecase,
	rating *RatingUsecase,
) *SignalUsecase {
	return &SignalUsecase{
		signalRepo: signalRepo,
		userRepo:   userRepo,
		guard:      guard,
		rating:     rating,
	}
}

// ProviderProfile is a provider with its aggregated reputation score
type ProviderProfile struct {
	User   *entities.User `json:"user"`
	Rating float64        `json:"rating"`
}

// PublishSpot publishes a spot signal. Providers must have a payout
// wallet on file before they can publish.
func (u *SignalUsecase) PublishSpot(ctx context.Context, principal *entities.Principal, input *entities.CreateSpotSignalInput) (*entities.Signal, error) {
	return u.publish(ctx, principal, input, 0, true)
}

// PublishFutures publishes a futures signal carrying leverage
func (u *SignalUsecase) PublishFutures(ctx context.Context, principal *entities.Principal, input *entities.CreateFuturesSignalInput) (*entities.Signal, error) {
	return u.publish(ctx, principal, &input.CreateSpotSignalInput, input.Leverage, false)
}

func (u *SignalUsecase) publish(ctx context.Context, principal *entities.Principal, input *entities.CreateSpotSignalInput, leverage int, isSpot bool) (*entities.Signal, error) {
	provider, err := u.guard.Require(ctx, principal, entities.PermissionProvider)
	if err != nil {
		return nil, err
	}
	if !provider.Wallet.Valid || provider.Wallet.String == "" {
		return nil, domainerrors.Forbidden("Provider has no wallet address")
	}

	payload := entities.SignalPayload{
		Symbol:   input.Symbol,
		Side:     entities.SignalSide(input.Side),
		Quantity: input.Quantity,
		Price:    input.Price,
	}
	if input.StopLoss > 0 {
		payload.StopLoss = null.Float64From(input.StopLoss)
	}
	if input.TakeProfit > 0 {
		payload.TakeProfit = null.Float64From(input.TakeProfit)
	}
	if !isSpot {
		payload.Leverage = null.IntFrom(leverage)
	}

	signal := &entities.Signal{
		ProviderID: provider.ID,
		Payload:    payload,
		IsSpot:     isSpot,
		Status:     true,
		CreatedAt:  time.Now(),
	}
	if err := u.signalRepo.Create(ctx, signal); err != nil {
		return nil, err
	}
	return signal, nil
}

// ListMine lists the provider's own signals, active or not
func (u *SignalUsecase) ListMine(ctx context.Context, principal *entities.Principal, pagination utils.PaginationParams) ([]*entities.Signal, int64, error) {
	provider, err := u.guard.Require(ctx, principal, entities.PermissionProvider)
	if err != nil {
		return nil, 0, err
	}
	return u.signalRepo.ListByProvider(ctx, provider.ID, pagination)
}

// ListActive lists currently active signals of one market kind for
// consumers to browse
func (u *SignalUsecase) ListActive(ctx context.Context, principal *entities.Principal, isSpot bool, pagination utils.PaginationParams) ([]*entities.Signal, int64, error) {
	if _, err := u.guard.Require(ctx, principal, entities.PermissionUser); err != nil {
		return nil, 0, err
	}
	return u.signalRepo.ListActive(ctx, isSpot, pagination)
}

// Deactivate retires one of the provider's own signals. Deactivation is
// permanent; retired signals accept no new placements.
func (u *SignalUsecase) Deactivate(ctx context.Context, principal *entities.Principal, signalID uuid.UUID) error {
	provider, err := u.guard.Require(ctx, principal, entities.PermissionProvider)
	if err != nil {
		return err
	}

	signal, err := u.signalRepo.GetByID(ctx, signalID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("The signal does not exist")
		}
		return err
	}
	if signal.ProviderID != provider.ID {
		return domainerrors.Forbidden("You can only deactivate your own signals")
	}
	if !signal.Status {
		return domainerrors.BadRequest("The signal is already inactive")
	}

	return u.signalRepo.UpdateStatus(ctx, signalID, false)
}

// UpdateWallet sets the provider's payout wallet address
func (u *SignalUsecase) UpdateWallet(ctx context.Context, principal *entities.Principal, wallet string) (*entities.User, error) {
	provider, err := u.guard.Require(ctx, principal, entities.PermissionProvider)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(wallet) {
		return nil, domainerrors.BadRequest("Invalid wallet address")
	}

	if err := u.userRepo.UpdateWallet(ctx, provider.ID, wallet); err != nil {
		return nil, err
	}
	provider.Wallet = null.StringFrom(wallet)
	return provider, nil
}

// GetProviderProfile returns a provider together with its reputation
// score. Any logged-in user may look up a provider.
func (u *SignalUsecase) GetProviderProfile(ctx context.Context, principal *entities.Principal, providerID uuid.UUID) (*ProviderProfile, error) {
	if _, err := u.guard.Require(ctx, principal, entities.PermissionUser); err != nil {
		return nil, err
	}

	provider, err := u.userRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("The provider does not exist")
		}
		return nil, err
	}
	if provider.Role != entities.UserRoleProvider {
		return nil, domainerrors.NotFound("The provider does not exist")
	}

	score, err := u.rating.ComputeProviderRating(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return &ProviderProfile{User: provider, Rating: score}, nil
}
