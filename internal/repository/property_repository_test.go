package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mathvic456/real-estate-management/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Property{}, &models.Payment{}, &models.Notification{}))
	return db
}

func seedProperty(t *testing.T, repo PropertyRepository, ownerID uuid.UUID, name string, status models.PaymentStatus, nextDue *time.Time) *models.Property {
	t.Helper()
	property := &models.Property{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           name,
		MonthlyRent:    1000,
		Status:         models.PropertyOccupied,
		Type:           models.TypeApartment,
		PaymentStatus:  status,
		NextPaymentDue: nextDue,
	}
	require.NoError(t, repo.Create(context.Background(), property))
	return property
}

func TestPropertyRepository_OwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	ownerA := uuid.New()
	ownerB := uuid.New()
	mine := seedProperty(t, repo, ownerA, "Mine", models.PaymentPaid, nil)
	seedProperty(t, repo, ownerB, "Theirs", models.PaymentPaid, nil)

	t.Run("get only sees own rows", func(t *testing.T) {
		got, err := repo.GetByID(ctx, ownerA, mine.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Mine", got.Name)

		_, err = repo.GetByID(ctx, ownerB, mine.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("list only sees own rows", func(t *testing.T) {
		properties, total, err := repo.List(ctx, ownerA, PropertyFilters{Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, properties, 1)
		assert.Equal(t, "Mine", properties[0].Name)
	})

	t.Run("update cannot touch another owner's row", func(t *testing.T) {
		stolen := *mine
		stolen.OwnerID = ownerB
		stolen.Name = "Hijacked"
		assert.ErrorIs(t, repo.Update(ctx, &stolen), gorm.ErrRecordNotFound)

		got, err := repo.GetByID(ctx, ownerA, mine.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Mine", got.Name)
	})
}

func TestPropertyRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	propertyRepo := NewPropertyRepository(db)
	paymentRepo := NewPaymentRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	target := seedProperty(t, propertyRepo, ownerID, "Doomed", models.PaymentPaid, nil)
	survivor := seedProperty(t, propertyRepo, ownerID, "Survivor", models.PaymentPaid, nil)

	payment := &models.Payment{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		PropertyID:   target.ID,
		PropertyName: target.Name,
		Amount:       500,
		PaymentDate:  time.Now(),
		Method:       models.MethodCash,
		State:        models.PaymentCompleted,
	}
	require.NoError(t, paymentRepo.Create(ctx, payment))

	require.NoError(t, propertyRepo.Delete(ctx, ownerID, target.ID))

	// exactly the targeted row is gone
	_, err := propertyRepo.GetByID(ctx, ownerID, target.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	remaining, total, err := propertyRepo.List(ctx, ownerID, PropertyFilters{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, survivor.ID, remaining[0].ID)

	// payment history referencing the deleted property survives
	payments, paymentTotal, err := paymentRepo.List(ctx, ownerID, PaymentFilters{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), paymentTotal)
	assert.Equal(t, target.ID, payments[0].PropertyID)

	// deleting again reports not found
	assert.ErrorIs(t, propertyRepo.Delete(ctx, ownerID, target.ID), gorm.ErrRecordNotFound)
}

func TestPropertyRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	seedProperty(t, repo, ownerID, "Paid one", models.PaymentPaid, nil)
	seedProperty(t, repo, ownerID, "Pending one", models.PaymentPending, nil)
	seedProperty(t, repo, ownerID, "Overdue one", models.PaymentOverdue, nil)

	pending := models.PaymentPending
	properties, total, err := repo.List(ctx, ownerID, PropertyFilters{
		PaymentStatus: &pending,
		Page:          1,
		Limit:         10,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Pending one", properties[0].Name)
}

func TestPropertyRepository_MarkOverdue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	ownerID := uuid.New()
	pastDue := seedProperty(t, repo, ownerID, "Past due", models.PaymentPending, &past)
	notYetDue := seedProperty(t, repo, ownerID, "Not yet due", models.PaymentPending, &future)
	alreadyPaid := seedProperty(t, repo, ownerID, "Paid", models.PaymentPaid, &past)
	noDueDate := seedProperty(t, repo, ownerID, "No due date", models.PaymentPending, nil)

	affected, err := repo.MarkOverdue(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	expect := map[uuid.UUID]models.PaymentStatus{
		pastDue.ID:     models.PaymentOverdue,
		notYetDue.ID:   models.PaymentPending,
		alreadyPaid.ID: models.PaymentPaid,
		noDueDate.ID:   models.PaymentPending,
	}
	for id, want := range expect {
		got, err := repo.GetByID(ctx, ownerID, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.PaymentStatus)
	}
}
