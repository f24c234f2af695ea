package repositories

import (
	"context"

	"github.com/google/uuid"
	"signals-hub.backend/internal/domain/entities"
	"signals-hub.backend/pkg/utils"
)

// SignalRepository defines signal data operations
type SignalRepository interface {
	Create(ctx context.Context, signal *entities.Signal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Signal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status bool) error
	ListByProvider(ctx context.Context, providerID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Signal, int64, error)
	ListActive(ctx context.Context, isSpot bool, pagination utils.PaginationParams) ([]*entities.Signal, int64, error)
}

// PlacementRepository defines placement (rating record) data operations.
// RatingsForProvider joins placements through signal ownership and
// returns every stored rating value, including unrated zeros.
type PlacementRepository interface {
	Create(ctx context.Context, placement *entities.Placement) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Placement, error)
	GetByUserAndSignal(ctx context.Context, userID, signalID uuid.UUID) (*entities.Placement, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating int) error
	ListByUser(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Placement, int64, error)
	RatingsForProvider(ctx context.Context, providerID uuid.UUID) ([]int, error)
}
