package repositories

import (
	"context"

	"github.com/google/uuid"
	"signals-hub.backend/internal/domain/entities"
	"signals-hub.backend/pkg/utils"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateWallet(ctx context.Context, id uuid.UUID, wallet string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	Activate(ctx context.Context, id uuid.UUID) error
	ListByRole(ctx context.Context, role entities.UserRole, pagination utils.PaginationParams) ([]*entities.User, int64, error)
	List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error)
}
