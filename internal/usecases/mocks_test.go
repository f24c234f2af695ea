package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"signals-hub.backend/internal/domain/entities"
	"signals-hub.backend/pkg/utils"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateWallet(ctx context.Context, id uuid.UUID, wallet string) error {
	args := m.Called(ctx, id, wallet)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) Activate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role entities.UserRole, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	args := m.Called(ctx, role, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

// Mock UserTokenRepository
type MockUserTokenRepository struct {
	mock.Mock
}

func (m *MockUserTokenRepository) Create(ctx context.Context, token *entities.UserToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockUserTokenRepository) GetByValue(ctx context.Context, value string) (*entities.UserToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserToken), args.Error(1)
}

func (m *MockUserTokenRepository) ConsumeByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// Mock SignalRepository
type MockSignalRepository struct {
	mock.Mock
}

func (m *MockSignalRepository) Create(ctx context.Context, signal *entities.Signal) error {
	args := m.Called(ctx, signal)
	return args.Error(0)
}

func (m *MockSignalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Signal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Signal), args.Error(1)
}

func (m *MockSignalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status bool) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSignalRepository) ListByProvider(ctx context.Context, providerID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Signal, int64, error) {
	args := m.Called(ctx, providerID, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Signal), args.Get(1).(int64), args.Error(2)
}

func (m *MockSignalRepository) ListActive(ctx context.Context, isSpot bool, pagination utils.PaginationParams) ([]*entities.Signal, int64, error) {
	args := m.Called(ctx, isSpot, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Signal), args.Get(1).(int64), args.Error(2)
}

// Mock PlacementRepository
type MockPlacementRepository struct {
	mock.Mock
}

func (m *MockPlacementRepository) Create(ctx context.Context, placement *entities.Placement) error {
	args := m.Called(ctx, placement)
	return args.Error(0)
}

func (m *MockPlacementRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Placement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Placement), args.Error(1)
}

func (m *MockPlacementRepository) GetByUserAndSignal(ctx context.Context, userID, signalID uuid.UUID) (*entities.Placement, error) {
	args := m.Called(ctx, userID, signalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Placement), args.Error(1)
}

func (m *MockPlacementRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating int) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func (m *MockPlacementRepository) ListByUser(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Placement, int64, error) {
	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Placement), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlacementRepository) RatingsForProvider(ctx context.Context, providerID uuid.UUID) ([]int, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// Mock Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendActivation(ctx context.Context, to, token string) error {
	args := m.Called(ctx, to, token)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	args := m.Called(ctx, to, token)
	return args.Error(0)
}
