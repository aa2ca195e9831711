package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Mathvic456/real-estate-management/internal/models"
	"github.com/Mathvic456/real-estate-management/internal/repository"
)

// leaseExpiryWindowDays bounds the "expiring soon" dashboard counter
const leaseExpiryWindowDays = 30

type PropertyService struct {
	repo   repository.PropertyRepository
	logger *logrus.Logger

	// overridable in tests
	nowFunc func() time.Time
}

func NewPropertyService(repo repository.PropertyRepository, logger *logrus.Logger) *PropertyService {
	return &PropertyService{
		repo:    repo,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Create adds a property, deriving its initial payment state from occupancy:
// a property with an occupant starts a pending cycle due on the first of the
// following month, an empty one has nothing owed and is marked paid.
func (s *PropertyService) Create(ctx context.Context, ownerID uuid.UUID, req *models.CreatePropertyRequest) (*models.Property, error) {
	property := &models.Property{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          req.Name,
		MonthlyRent:   req.MonthlyRent,
		Status:        req.Status,
		Type:          req.Type,
		OccupantName:  req.OccupantName,
		OccupantEmail: req.OccupantEmail,
		OccupantPhone: req.OccupantPhone,
		LeaseStart:    req.LeaseStart,
		LeaseEnd:      req.LeaseEnd,
	}

	if property.HasOccupant() {
		property.PaymentStatus = models.PaymentPending
		due := firstOfFollowingMonth(s.nowFunc())
		property.NextPaymentDue = &due
	} else {
		property.PaymentStatus = models.PaymentPaid
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return property, nil
}

// Update replaces the editable fields of a property. Payment history fields
// (last payment date, next due date) are never touched here; the payment
// status only changes when the request carries an explicit override.
func (s *PropertyService) Update(ctx context.Context, ownerID, propertyID uuid.UUID, req *models.UpdatePropertyRequest) (*models.Property, error) {
	property, err := s.repo.GetByID(ctx, ownerID, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("property")
		}
		return nil, err
	}

	property.Name = req.Name
	property.MonthlyRent = req.MonthlyRent
	property.Status = req.Status
	property.Type = req.Type
	property.OccupantName = req.OccupantName
	property.OccupantEmail = req.OccupantEmail
	property.OccupantPhone = req.OccupantPhone
	property.LeaseStart = req.LeaseStart
	property.LeaseEnd = req.LeaseEnd
	if req.PaymentStatus != nil {
		property.PaymentStatus = *req.PaymentStatus
	}

	if err := s.repo.Update(ctx, property); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("property")
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return property, nil
}

// Delete removes a single property. Payment and notification records that
// reference it are kept for bookkeeping.
func (s *PropertyService) Delete(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("property")
		}
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

func (s *PropertyService) Get(ctx context.Context, ownerID, propertyID uuid.UUID) (*models.Property, error) {
	property, err := s.repo.GetByID(ctx, ownerID, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("property")
		}
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) List(ctx context.Context, ownerID uuid.UUID, filters repository.PropertyFilters) ([]models.Property, int64, error) {
	return s.repo.List(ctx, ownerID, filters)
}

// Metrics computes the dashboard summary from the owner's full portfolio
func (s *PropertyService) Metrics(ctx context.Context, ownerID uuid.UUID) (*models.DashboardMetrics, error) {
	properties, err := s.repo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	now := s.nowFunc()
	metrics := &models.DashboardMetrics{TotalProperties: len(properties)}
	for _, p := range properties {
		// Occupancy is keyed on the occupant, not the status field
		if p.HasOccupant() {
			metrics.Occupied++
		}
		metrics.TotalRent += p.MonthlyRent
		if p.PaymentStatus == models.PaymentOverdue {
			metrics.Overdue++
		}
		if p.LeaseEnd != nil {
			days := int(math.Ceil(p.LeaseEnd.Sub(now).Hours() / 24))
			if days > 0 && days <= leaseExpiryWindowDays {
				metrics.ExpiringSoon++
			}
		}
	}
	metrics.Vacant = metrics.TotalProperties - metrics.Occupied
	return metrics, nil
}

// SweepOverdue flips pending payment statuses whose due date has passed.
// Invoked by the scheduled sweeper.
func (s *PropertyService) SweepOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	affected, err := s.repo.MarkOverdue(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue payments: %w", err)
	}
	if affected > 0 {
		s.logger.WithField("count", affected).Info("marked properties overdue")
	}
	return affected, nil
}

// firstOfFollowingMonth returns midnight UTC on the first day of the month
// after t.
func firstOfFollowingMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
