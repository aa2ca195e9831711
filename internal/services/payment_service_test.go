package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/Mathvic456/real-estate-management/internal/models"
)

func newTestPaymentService(payments *MockPaymentRepository, properties *MockPropertyRepository) *PaymentService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewPaymentService(payments, properties, logger)
}

func TestPaymentService_Record(t *testing.T) {
	ownerID := uuid.New()
	propertyID := uuid.New()
	paymentDate := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	property := func() *models.Property {
		return &models.Property{
			ID:            propertyID,
			OwnerID:       ownerID,
			Name:          "Unit 4B",
			MonthlyRent:   1200,
			Status:        models.PropertyOccupied,
			OccupantName:  strPtr("Jordan Okafor"),
			PaymentStatus: models.PaymentOverdue,
		}
	}

	t.Run("records payment and settles the property cycle", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		properties := new(MockPropertyRepository)
		properties.On("GetByID", mock.Anything, ownerID, propertyID).Return(property(), nil)
		payments.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil)

		var updated *models.Property
		properties.On("Update", mock.Anything, mock.AnythingOfType("*models.Property")).
			Run(func(args mock.Arguments) {
				updated = args.Get(1).(*models.Property)
			}).Return(nil)

		svc := newTestPaymentService(payments, properties)
		payment, err := svc.Record(context.Background(), ownerID, &models.RecordPaymentRequest{
			PropertyID:  propertyID,
			Amount:      1200,
			PaymentDate: paymentDate,
			Method:      models.MethodBankTransfer,
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentCompleted, payment.State)
		assert.Equal(t, "Unit 4B", payment.PropertyName)
		assert.Equal(t, "Jordan Okafor", payment.OccupantName)

		// property cycle settled
		assert.NotNil(t, updated)
		assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
		assert.Equal(t, paymentDate, *updated.LastPaymentDate)
		assert.Equal(t, paymentDate.AddDate(0, 1, 0), *updated.NextPaymentDue)
		payments.AssertExpectations(t)
	})

	t.Run("unknown property returns not found before writing", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		properties := new(MockPropertyRepository)
		properties.On("GetByID", mock.Anything, ownerID, propertyID).Return(nil, gorm.ErrRecordNotFound)

		svc := newTestPaymentService(payments, properties)
		_, err := svc.Record(context.Background(), ownerID, &models.RecordPaymentRequest{
			PropertyID:  propertyID,
			Amount:      500,
			PaymentDate: paymentDate,
			Method:      models.MethodCash,
		})

		_, isNotFound := IsNotFoundError(err)
		assert.True(t, isNotFound)
		payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("snapshot is empty when the property has no occupant", func(t *testing.T) {
		vacant := property()
		vacant.OccupantName = nil

		payments := new(MockPaymentRepository)
		properties := new(MockPropertyRepository)
		properties.On("GetByID", mock.Anything, ownerID, propertyID).Return(vacant, nil)
		payments.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil)
		properties.On("Update", mock.Anything, mock.AnythingOfType("*models.Property")).Return(nil)

		svc := newTestPaymentService(payments, properties)
		payment, err := svc.Record(context.Background(), ownerID, &models.RecordPaymentRequest{
			PropertyID:  propertyID,
			Amount:      1200,
			PaymentDate: paymentDate,
			Method:      models.MethodCard,
		})

		assert.NoError(t, err)
		assert.Equal(t, "", payment.OccupantName)
	})
}
