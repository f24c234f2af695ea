package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/infrastructure/models"
	"signals-hub.backend/pkg/utils"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Uniqueness of username and email is enforced
// by the store; violations map to ErrAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	m := &models.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Wallet:       user.Wallet.Ptr(),
		IsActive:     user.IsActive,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByUsername gets a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// ExistsByUsernameOrEmail reports whether any user holds the username or email
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdatePassword sets a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
}

// UpdateWallet sets the payout wallet address
func (r *UserRepository) UpdateWallet(ctx context.Context, id uuid.UUID, wallet string) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"wallet":     wallet,
		"updated_at": time.Now(),
	})
}

// UpdateRole sets the role field. Single-row write; concurrent role
// changes on the same user are last-writer-wins.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"role":       string(role),
		"updated_at": time.Now(),
	})
}

// Activate flips the active flag on
func (r *UserRepository) Activate(ctx context.Context, id uuid.UUID) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"is_active":  true,
		"updated_at": time.Now(),
	})
}

// ListByRole lists users holding a role, newest first
func (r *UserRepository) ListByRole(ctx context.Context, role entities.UserRole, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", string(role)), pagination)
}

// List lists all users, newest first
func (r *UserRepository) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.User{}), pagination)
}

func (r *UserRepository) list(ctx context.Context, query *gorm.DB, pagination utils.PaginationParams) ([]*entities.User, int64, error) {
	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var userModels []models.User
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	var users []*entities.User
	for _, m := range userModels {
		model := m
		users = append(users, userToEntity(&model))
	}
	return users, totalCount, nil
}

func (r *UserRepository) updateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Wallet:       null.StringFromPtr(m.Wallet),
		IsActive:     m.IsActive,
		Role:         entities.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// isUniqueViolation matches unique-constraint errors from both postgres
// and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
