package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/infrastructure/models"
	"signals-hub.backend/pkg/utils"
)

// PlacementRepository implements placement data operations
type PlacementRepository struct {
	db *gorm.DB
}

// NewPlacementRepository creates a new placement repository
func NewPlacementRepository(db *gorm.DB) *PlacementRepository {
	return &PlacementRepository{db: db}
}

// Create creates a new placement with the unrated default
func (r *PlacementRepository) Create(ctx context.Context, placement *entities.Placement) error {
	if placement.ID == uuid.Nil {
		placement.ID = utils.GenerateUUIDv7()
	}
	m := &models.Placement{
		ID:        placement.ID,
		UserID:    placement.UserID,
		SignalID:  placement.SignalID,
		Rating:    placement.Rating,
		CreatedAt: placement.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a placement by ID
func (r *PlacementRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Placement, error) {
	var m models.Placement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return placementToEntity(&m), nil
}

// GetByUserAndSignal gets the placement a consumer holds on a signal
func (r *PlacementRepository) GetByUserAndSignal(ctx context.Context, userID, signalID uuid.UUID) (*entities.Placement, error) {
	var m models.Placement
	if err := r.db.WithContext(ctx).Where("user_id = ? AND signal_id = ?", userID, signalID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return placementToEntity(&m), nil
}

// UpdateRating sets the rating value on a placement
func (r *PlacementRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating int) error {
	result := r.db.WithContext(ctx).Model(&models.Placement{}).Where("id = ?", id).Update("rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUser lists a consumer's placements, newest first
func (r *PlacementRepository) ListByUser(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Placement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Placement{}).Where("user_id = ?", userID)

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var placementModels []models.Placement
	if err := query.Find(&placementModels).Error; err != nil {
		return nil, 0, err
	}

	var placements []*entities.Placement
	for _, m := range placementModels {
		model := m
		placements = append(placements, placementToEntity(&model))
	}
	return placements, totalCount, nil
}

// RatingsForProvider returns every rating attached to the provider's
// signals, unrated zeros included. Filtering is the aggregator's job.
func (r *PlacementRepository) RatingsForProvider(ctx context.Context, providerID uuid.UUID) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).
		Table("placements").
		Select("placements.rating").
		Joins("JOIN signals ON signals.id = placements.signal_id").
		Where("signals.provider_id = ?", providerID).
		Scan(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func placementToEntity(m *models.Placement) *entities.Placement {
	return &entities.Placement{
		ID:        m.ID,
		UserID:    m.UserID,
		SignalID:  m.SignalID,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt,
	}
}
