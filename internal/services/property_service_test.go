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

func newTestPropertyService(repo *MockPropertyRepository, now time.Time) *PropertyService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := NewPropertyService(repo, logger)
	svc.nowFunc = func() time.Time { return now }
	return svc
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestPropertyService_Create(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("occupied property starts a pending cycle due next month", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Property")).Return(nil)
		svc := newTestPropertyService(repo, now)

		property, err := svc.Create(context.Background(), ownerID, &models.CreatePropertyRequest{
			Name:         "Unit 4B",
			MonthlyRent:  1200,
			Status:       models.PropertyOccupied,
			Type:         models.TypeApartment,
			OccupantName: strPtr("Jordan Okafor"),
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentPending, property.PaymentStatus)
		assert.NotNil(t, property.NextPaymentDue)
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *property.NextPaymentDue)
		assert.Nil(t, property.LastPaymentDate)
		assert.Equal(t, ownerID, property.OwnerID)
		repo.AssertExpectations(t)
	})

	t.Run("december rolls the due date into january", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Property")).Return(nil)
		svc := newTestPropertyService(repo, time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC))

		property, err := svc.Create(context.Background(), ownerID, &models.CreatePropertyRequest{
			Name:         "Unit 7",
			MonthlyRent:  900,
			Status:       models.PropertyOccupied,
			Type:         models.TypeHouse,
			OccupantName: strPtr("Ada"),
		})

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *property.NextPaymentDue)
	})

	t.Run("vacant property starts paid with no due date", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Property")).Return(nil)
		svc := newTestPropertyService(repo, now)

		property, err := svc.Create(context.Background(), ownerID, &models.CreatePropertyRequest{
			Name:        "Store Front",
			MonthlyRent: 2500,
			Status:      models.PropertyVacant,
			Type:        models.TypeCommercial,
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentPaid, property.PaymentStatus)
		assert.Nil(t, property.NextPaymentDue)
	})

	t.Run("empty occupant name counts as no occupant", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Property")).Return(nil)
		svc := newTestPropertyService(repo, now)

		property, err := svc.Create(context.Background(), ownerID, &models.CreatePropertyRequest{
			Name:         "Unit 1",
			MonthlyRent:  700,
			Status:       models.PropertyVacant,
			Type:         models.TypeApartment,
			OccupantName: strPtr(""),
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentPaid, property.PaymentStatus)
	})
}

func TestPropertyService_Update(t *testing.T) {
	ownerID := uuid.New()
	propertyID := uuid.New()
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	lastPaid := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	nextDue := time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)

	existing := func() *models.Property {
		return &models.Property{
			ID:              propertyID,
			OwnerID:         ownerID,
			Name:            "Unit 4B",
			MonthlyRent:     1200,
			Status:          models.PropertyOccupied,
			Type:            models.TypeApartment,
			OccupantName:    strPtr("Jordan Okafor"),
			PaymentStatus:   models.PaymentPaid,
			LastPaymentDate: timePtr(lastPaid),
			NextPaymentDue:  timePtr(nextDue),
		}
	}

	t.Run("edit leaves payment fields untouched without an override", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("GetByID", mock.Anything, ownerID, propertyID).Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Property")).Return(nil)
		svc := newTestPropertyService(repo, now)

		property, err := svc.Update(context.Background(), ownerID, propertyID, &models.UpdatePropertyRequest{
			Name:         "Unit 4B Renovated",
			MonthlyRent:  1400,
			Status:       models.PropertyOccupied,
			Type:         models.TypeApartment,
			OccupantName: strPtr("Jordan Okafor"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Unit 4B Renovated", property.Name)
		assert.Equal(t, float64(1400), property.MonthlyRent)
		assert.Equal(t, models.PaymentPaid, property.PaymentStatus)
		assert.Equal(t, lastPaid, *property.LastPaymentDate)
		assert.Equal(t, nextDue, *property.NextPaymentDue)
	})

	t.Run("explicit override changes the payment status", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("GetByID", mock.Anything, ownerID, propertyID).Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Property")).Return(nil)
		svc := newTestPropertyService(repo, now)

		override := models.PaymentOverdue
		property, err := svc.Update(context.Background(), ownerID, propertyID, &models.UpdatePropertyRequest{
			Name:          "Unit 4B",
			MonthlyRent:   1200,
			Status:        models.PropertyOccupied,
			Type:          models.TypeApartment,
			OccupantName:  strPtr("Jordan Okafor"),
			PaymentStatus: &override,
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentOverdue, property.PaymentStatus)
		assert.Equal(t, lastPaid, *property.LastPaymentDate)
	})

	t.Run("unknown property returns not found", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("GetByID", mock.Anything, ownerID, propertyID).Return(nil, gorm.ErrRecordNotFound)
		svc := newTestPropertyService(repo, now)

		_, err := svc.Update(context.Background(), ownerID, propertyID, &models.UpdatePropertyRequest{
			Name:        "Unit 4B",
			MonthlyRent: 1200,
			Status:      models.PropertyOccupied,
			Type:        models.TypeApartment,
		})

		_, isNotFound := IsNotFoundError(err)
		assert.True(t, isNotFound)
	})
}

func TestPropertyService_Metrics(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	properties := []models.Property{
		{
			Status:        models.PropertyOccupied,
			OccupantName:  strPtr("A"),
			MonthlyRent:   1000,
			PaymentStatus: models.PaymentOverdue,
			LeaseEnd:      timePtr(now.AddDate(0, 0, 10)), // within the window
		},
		{
			Status:        models.PropertyOccupied,
			OccupantName:  strPtr("B"),
			MonthlyRent:   1500,
			PaymentStatus: models.PaymentPaid,
			LeaseEnd:      timePtr(now.AddDate(0, 0, 45)), // outside the window
		},
		{
			Status:        models.PropertyVacant,
			MonthlyRent:   800,
			PaymentStatus: models.PaymentPaid,
		},
		{
			// occupancy is derived from the occupant field, not the status
			Status:        models.PropertyMaintenance,
			MonthlyRent:   600,
			PaymentStatus: models.PaymentPending,
			LeaseEnd:      timePtr(now.AddDate(0, 0, -5)), // already expired
		},
	}

	repo := new(MockPropertyRepository)
	repo.On("ListAll", mock.Anything, ownerID).Return(properties, nil)
	svc := newTestPropertyService(repo, now)

	metrics, err := svc.Metrics(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.Equal(t, 4, metrics.TotalProperties)
	assert.Equal(t, 2, metrics.Occupied)
	assert.Equal(t, 2, metrics.Vacant)
	assert.Equal(t, float64(3900), metrics.TotalRent)
	assert.Equal(t, 1, metrics.Overdue)
	assert.Equal(t, 1, metrics.ExpiringSoon)
}

func TestPropertyService_Metrics_LeaseBoundaries(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("lease ending exactly in 30 days counts", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("ListAll", mock.Anything, ownerID).Return([]models.Property{
			{Status: models.PropertyOccupied, LeaseEnd: timePtr(now.AddDate(0, 0, 30))},
		}, nil)
		svc := newTestPropertyService(repo, now)

		metrics, err := svc.Metrics(context.Background(), ownerID)
		assert.NoError(t, err)
		assert.Equal(t, 1, metrics.ExpiringSoon)
	})

	t.Run("lease ending right now does not count", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("ListAll", mock.Anything, ownerID).Return([]models.Property{
			{Status: models.PropertyOccupied, LeaseEnd: timePtr(now)},
		}, nil)
		svc := newTestPropertyService(repo, now)

		metrics, err := svc.Metrics(context.Background(), ownerID)
		assert.NoError(t, err)
		assert.Equal(t, 0, metrics.ExpiringSoon)
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		repo.On("ListAll", mock.Anything, ownerID).Return([]models.Property{
			{Status: models.PropertyOccupied, LeaseEnd: timePtr(now.Add(12 * time.Hour))},
		}, nil)
		svc := newTestPropertyService(repo, now)

		metrics, err := svc.Metrics(context.Background(), ownerID)
		assert.NoError(t, err)
		assert.Equal(t, 1, metrics.ExpiringSoon)
	})
}

func TestPropertyService_SweepOverdue(t *testing.T) {
	now := time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC)

	repo := new(MockPropertyRepository)
	repo.On("MarkOverdue", mock.Anything, now).Return(int64(3), nil)
	svc := newTestPropertyService(repo, now)

	affected, err := svc.SweepOverdue(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	repo.AssertExpectations(t)
}
