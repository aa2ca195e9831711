package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mathvic456/real-estate-management/internal/models"
)

// PropertyFilters narrows and pages property listings. All queries are
// additionally scoped by the owning user.
type PropertyFilters struct {
	Status        *models.PropertyStatus
	Type          *models.PropertyType
	PaymentStatus *models.PaymentStatus
	Page          int
	Limit         int
	SortBy        string
	SortOrder     string
}

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filters PropertyFilters) ([]models.Property, int64, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]models.Property, error)
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *propertyRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		First(&property, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *models.Property) error {
	// Save with explicit owner scope so a stale id can never touch another
	// user's row
	result := r.db.WithContext(ctx).Model(&models.Property{}).
		Where("id = ? AND owner_id = ?", property.ID, property.OwnerID).
		Select("*").Omit("id", "owner_id", "created_at").
		Updates(property)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.Property{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *propertyRepository) List(ctx context.Context, ownerID uuid.UUID, filters PropertyFilters) ([]models.Property, int64, error) {
	var properties []models.Property
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Property{}).Where("owner_id = ?", ownerID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filters.PaymentStatus)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 20
	}
	offset := (filters.Page - 1) * filters.Limit

	sortBy := "created_at"
	if filters.SortBy != "" {
		sortBy = filters.SortBy
	}
	sortOrder := "DESC"
	if filters.SortOrder != "" {
		sortOrder = filters.SortOrder
	}

	err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).Limit(filters.Limit).
		Find(&properties).Error
	return properties, total, err
}

func (r *propertyRepository) ListAll(ctx context.Context, ownerID uuid.UUID) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}

// MarkOverdue flips pending properties whose next due date has passed.
// Runs across all owners; used by the overdue sweeper.
func (r *propertyRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Property{}).
		Where("payment_status = ? AND next_payment_due IS NOT NULL AND next_payment_due < ?",
			models.PaymentPending, asOf).
		Update("payment_status", models.PaymentOverdue)
	return result.RowsAffected, result.Error
}
