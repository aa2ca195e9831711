package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mathvic456/real-estate-management/internal/models"
)

// PaymentFilters narrows and pages payment history
type PaymentFilters struct {
	PropertyID *uuid.UUID
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// PaymentRepository persists the append-only payment history. Payments are
// never updated or deleted.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, ownerID uuid.UUID, filters PaymentFilters) ([]models.Payment, int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) List(ctx context.Context, ownerID uuid.UUID, filters PaymentFilters) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Payment{}).Where("owner_id = ?", ownerID)
	if filters.PropertyID != nil {
		query = query.Where("property_id = ?", *filters.PropertyID)
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

	sortBy := "payment_date"
	if filters.SortBy != "" {
		sortBy = filters.SortBy
	}
	sortOrder := "DESC"
	if filters.SortOrder != "" {
		sortOrder = filters.SortOrder
	}

	err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).Limit(filters.Limit).
		Find(&payments).Error
	return payments, total, err
}
