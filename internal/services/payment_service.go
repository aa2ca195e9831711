package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Mathvic456/real-estate-management/internal/models"
	"github.com/Mathvic456/real-estate-management/internal/repository"
)

type PaymentService struct {
	payments   repository.PaymentRepository
	properties repository.PropertyRepository
	logger     *logrus.Logger
}

func NewPaymentService(payments repository.PaymentRepository, properties repository.PropertyRepository, logger *logrus.Logger) *PaymentService {
	return &PaymentService{
		payments:   payments,
		properties: properties,
		logger:     logger,
	}
}

// Record appends a payment to the history and settles the property's current
// rent cycle: payment status flips to paid and the next due date advances one
// month from the payment date.
func (s *PaymentService) Record(ctx context.Context, ownerID uuid.UUID, req *models.RecordPaymentRequest) (*models.Payment, error) {
	property, err := s.properties.GetByID(ctx, ownerID, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("property")
		}
		return nil, err
	}

	occupantName := ""
	if property.OccupantName != nil {
		occupantName = *property.OccupantName
	}

	payment := &models.Payment{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		PropertyID:    property.ID,
		PropertyName:  property.Name,
		OccupantName:  occupantName,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		Method:        req.Method,
		State:         models.PaymentCompleted,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	paymentDate := req.PaymentDate
	nextDue := paymentDate.AddDate(0, 1, 0)
	property.PaymentStatus = models.PaymentPaid
	property.LastPaymentDate = &paymentDate
	property.NextPaymentDue = &nextDue
	if err := s.properties.Update(ctx, property); err != nil {
		// the payment row is already committed; surface the inconsistency
		s.logger.WithError(err).WithField("property_id", property.ID).Error("failed to update property after payment")
		return nil, fmt.Errorf("payment recorded but property update failed: %w", err)
	}

	return payment, nil
}

func (s *PaymentService) List(ctx context.Context, ownerID uuid.UUID, filters repository.PaymentFilters) ([]models.Payment, int64, error) {
	return s.payments.List(ctx, ownerID, filters)
}
