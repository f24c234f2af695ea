package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/infrastructure/models"
	"signals-hub.backend/pkg/utils"
)

// SignalRepository implements signal data operations. The trade payload
// is stored as a JSON document, mirroring the one-column signal blob of
// the upstream schema.
type SignalRepository struct {
	db *gorm.DB
}

// NewSignalRepository creates a new signal repository
func NewSignalRepository(db *gorm.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

// Create creates a new signal
func (r *SignalRepository) Create(ctx context.Context, signal *entities.Signal) error {
	if signal.ID == uuid.Nil {
		signal.ID = utils.GenerateUUIDv7()
	}
	payload, err := json.Marshal(signal.Payload)
	if err != nil {
		return err
	}
	m := &models.Signal{
		ID:         signal.ID,
		ProviderID: signal.ProviderID,
		Payload:    string(payload),
		IsSpot:     signal.IsSpot,
		Status:     signal.Status,
		CreatedAt:  signal.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a signal by ID
func (r *SignalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Signal, error) {
	var m models.Signal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return signalToEntity(&m)
}

// UpdateStatus flips a signal's active status
func (r *SignalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status bool) error {
	result := r.db.WithContext(ctx).Model(&models.Signal{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByProvider lists a provider's signals, newest first
func (r *SignalRepository) ListByProvider(ctx context.Context, providerID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Signal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Signal{}).Where("provider_id = ?", providerID)
	return r.list(query, pagination)
}

// ListActive lists active signals of one market type, newest first
func (r *SignalRepository) ListActive(ctx context.Context, isSpot bool, pagination utils.PaginationParams) ([]*entities.Signal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Signal{}).Where("status = ? AND is_spot = ?", true, isSpot)
	return r.list(query, pagination)
}

func (r *SignalRepository) list(query *gorm.DB, pagination utils.PaginationParams) ([]*entities.Signal, int64, error) {
	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var signalModels []models.Signal
	if err := query.Find(&signalModels).Error; err != nil {
		return nil, 0, err
	}

	var signals []*entities.Signal
	for _, m := range signalModels {
		model := m
		signal, err := signalToEntity(&model)
		if err != nil {
			return nil, 0, err
		}
		signals = append(signals, signal)
	}
	return signals, totalCount, nil
}

func signalToEntity(m *models.Signal) (*entities.Signal, error) {
	var payload entities.SignalPayload
	if err := json.Unmarshal([]byte(m.Payload), &payload); err != nil {
		return nil, err
	}
	return &entities.Signal{
		ID:         m.ID,
		ProviderID: m.ProviderID,
		Payload:    payload,
		IsSpot:     m.IsSpot,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}, nil
}
