package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mathvic456/real-estate-management/internal/models"
)

// NotificationFilters narrows and pages notification history
type NotificationFilters struct {
	PropertyID *uuid.UUID
	Type       *models.NotificationType
	Status     *models.NotificationStatus
	Page       int
	Limit      int
}

// NotificationRepository persists the notification history. Records are
// appended and their delivery status updated, never deleted.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	Update(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, ownerID uuid.UUID, filters NotificationFilters) ([]models.Notification, int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

func (r *notificationRepository) List(ctx context.Context, ownerID uuid.UUID, filters NotificationFilters) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Notification{}).Where("owner_id = ?", ownerID)
	if filters.PropertyID != nil {
		query = query.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
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

	err := query.Order("created_at DESC").
		Offset(offset).Limit(filters.Limit).
		Find(&notifications).Error
	return notifications, total, err
}
