package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/pkg/utils"
)

func newRatingFixture() (*RatingUsecase, *MockPlacementRepository, *MockSignalRepository, *MockUserRepository) {
	placementRepo := new(MockPlacementRepository)
	signalRepo := new(MockSignalRepository)
	userRepo := new(MockUserRepository)
	guard := NewGuardUsecase(userRepo)
	return NewRatingUsecase(placementRepo, signalRepo, guard), placementRepo, signalRepo, userRepo
}

func expectActiveUser(userRepo *MockUserRepository, userID uuid.UUID, role entities.UserRole) {
	userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{
		ID:       userID,
		IsActive: true,
		Role:     role,
	}, nil)
}

func TestRating_PlaceSignal(t *testing.T) {
	usecase, placementRepo, signalRepo, userRepo := newRatingFixture()
	ctx := context.Background()

	userID := uuid.New()
	signalID := uuid.New()
	expectActiveUser(userRepo, userID, entities.UserRoleUser)
	signalRepo.On("GetByID", mock.Anything, signalID).Return(&entities.Signal{
		ID:     signalID,
		Status: true,
	}, nil)
	placementRepo.On("GetByUserAndSignal", mock.Anything, userID, signalID).Return(nil, domainerrors.ErrNotFound)
	placementRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Placement")).Return(nil)

	principal := entities.NewPrincipal(userID, entities.UserRoleUser)
	placement, err := usecase.PlaceSignal(ctx, principal, signalID)
	require.NoError(t, err)
	require.Equal(t, entities.RatingUnset, placement.Rating)
	require.Equal(t, userID, placement.UserID)
	require.Equal(t, signalID, placement.SignalID)
}

func TestRating_PlaceSignalRejections(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		usecase, _, _, _ := newRatingFixture()
		_, err := usecase.PlaceSignal(context.Background(), nil, uuid.New())
		var appErr *domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, "You are not logged in", appErr.Message)
	})

	t.Run("signal missing", func(t *testing.T) {
		usecase, _, signalRepo, userRepo := newRatingFixture()
		userID := uuid.New()
		signalID := uuid.New()
		expectActiveUser(userRepo, userID, entities.UserRoleUser)
		signalRepo.On("GetByID", mock.Anything, signalID).Return(nil, domainerrors.ErrNotFound)

		_, err := usecase.PlaceSignal(context.Background(), entities.NewPrincipal(userID, entities.UserRoleUser), signalID)
		require.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("signal inactive", func(t *testing.T) {
		usecase, _, signalRepo, userRepo := newRatingFixture()
		userID := uuid.New()
		signalID := uuid.New()
		expectActiveUser(userRepo, userID, entities.UserRoleUser)
		signalRepo.On("GetByID", mock.Anything, signalID).Return(&entities.Signal{ID: signalID, Status: false}, nil)

		_, err := usecase.PlaceSignal(context.Background(), entities.NewPrincipal(userID, entities.UserRoleUser), signalID)
		require.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("duplicate placement", func(t *testing.T) {
		usecase, placementRepo, signalRepo, userRepo := newRatingFixture()
		userID := uuid.New()
		signalID := uuid.New()
		expectActiveUser(userRepo, userID, entities.UserRoleUser)
		signalRepo.On("GetByID", mock.Anything, signalID).Return(&entities.Signal{ID: signalID, Status: true}, nil)
		placementRepo.On("GetByUserAndSignal", mock.Anything, userID, signalID).Return(&entities.Placement{ID: uuid.New()}, nil)

		_, err := usecase.PlaceSignal(context.Background(), entities.NewPrincipal(userID, entities.UserRoleUser), signalID)
		require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
		placementRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRating_RatePlacement(t *testing.T) {
	usecase, placementRepo, _, userRepo := newRatingFixture()
	ctx := context.Background()

	userID := uuid.New()
	placementID := uuid.New()
	expectActiveUser(userRepo, userID, entities.UserRoleUser)
	placementRepo.On("GetByID", mock.Anything, placementID).Return(&entities.Placement{
		ID:     placementID,
		UserID: userID,
	}, nil)
	placementRepo.On("UpdateRating", mock.Anything, placementID, 4).Return(nil)

	err := usecase.RatePlacement(ctx, entities.NewPrincipal(userID, entities.UserRoleUser), placementID, 4)
	require.NoError(t, err)
	placementRepo.AssertExpectations(t)
}

func TestRating_RatePlacementBounds(t *testing.T) {
	usecase, placementRepo, _, userRepo := newRatingFixture()
	userID := uuid.New()
	expectActiveUser(userRepo, userID, entities.UserRoleUser)
	principal := entities.NewPrincipal(userID, entities.UserRoleUser)

	for _, rating := range []int{0, -1, 6, 100} {
		err := usecase.RatePlacement(context.Background(), principal, uuid.New(), rating)
		require.ErrorIs(t, err, domainerrors.ErrInvalidInput, "rating %d must be rejected", rating)
	}
	placementRepo.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestRating_RatePlacementOwnershipEnforced(t *testing.T) {
	usecase, placementRepo, _, userRepo := newRatingFixture()

	userID := uuid.New()
	placementID := uuid.New()
	expectActiveUser(userRepo, userID, entities.UserRoleUser)
	placementRepo.On("GetByID", mock.Anything, placementID).Return(&entities.Placement{
		ID:     placementID,
		UserID: uuid.New(), // someone else's placement
	}, nil)

	err := usecase.RatePlacement(context.Background(), entities.NewPrincipal(userID, entities.UserRoleUser), placementID, 3)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	placementRepo.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestRating_ListPlacements(t *testing.T) {
	usecase, placementRepo, _, userRepo := newRatingFixture()

	userID := uuid.New()
	expectActiveUser(userRepo, userID, entities.UserRoleUser)
	pagination := utils.GetPaginationParams(1, 10)
	placementRepo.On("ListByUser", mock.Anything, userID, pagination).
		Return([]*entities.Placement{{ID: uuid.New()}}, int64(1), nil)

	placements, total, err := usecase.ListPlacements(context.Background(), entities.NewPrincipal(userID, entities.UserRoleUser), pagination)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, placements, 1)
}

func TestRating_ComputeProviderRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"plain mean", []int{3, 4, 5}, 4.0},
		{"unrated zeros excluded from both sides", []int{0, 0, 5}, 5.0},
		{"no placements", nil, 0.0},
		{"only unrated placements", []int{0, 0, 0}, 0.0},
		{"two decimals half away from zero", []int{4, 4, 5}, 4.33},
		{"rounds up", []int{5, 5, 4, 4, 4, 4}, 4.33},
		{"single rating", []int{1}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usecase, placementRepo, _, _ := newRatingFixture()
			providerID := uuid.New()
			placementRepo.On("RatingsForProvider", mock.Anything, providerID).Return(tt.ratings, nil)

			got, err := usecase.ComputeProviderRating(context.Background(), providerID)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRating_ComputeProviderRatingOrderIndependent(t *testing.T) {
	providerID := uuid.New()

	usecase, placementRepo, _, _ := newRatingFixture()
	placementRepo.On("RatingsForProvider", mock.Anything, providerID).Return([]int{5, 0, 3, 4}, nil)
	forward, err := usecase.ComputeProviderRating(context.Background(), providerID)
	require.NoError(t, err)

	usecase2, placementRepo2, _, _ := newRatingFixture()
	placementRepo2.On("RatingsForProvider", mock.Anything, providerID).Return([]int{4, 3, 0, 5}, nil)
	backward, err := usecase2.ComputeProviderRating(context.Background(), providerID)
	require.NoError(t, err)

	require.Equal(t, forward, backward)
}
