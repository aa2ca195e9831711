package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mathvic456/real-estate-management/internal/events"
	"github.com/Mathvic456/real-estate-management/internal/health"
	"github.com/Mathvic456/real-estate-management/internal/middleware"
	"github.com/Mathvic456/real-estate-management/internal/models"
	"github.com/Mathvic456/real-estate-management/internal/repository"
	"github.com/Mathvic456/real-estate-management/internal/services"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record appends a rent payment and settles the property's current cycle
// POST /api/v1/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	var req models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	payment, err := h.paymentService.Record(c.Request.Context(), ownerID, &req)
	if err != nil {
		health.RecordPaymentOperation("record", false)
		ServiceErrorResponse(c, err, "Failed to record payment")
		return
	}
	health.RecordPaymentOperation("record", true)

	if pub := events.GetPublisher(); pub != nil {
		pub.PublishPaymentRecorded(c.Request.Context(), &events.PaymentEvent{
			PaymentID:  payment.ID,
			PropertyID: payment.PropertyID,
			OwnerID:    ownerID,
			Amount:     payment.Amount,
			Timestamp:  time.Now().UTC(),
		})
	}

	c.JSON(http.StatusCreated, models.PaymentResponse{
		Success: true,
		Data:    payment,
		Message: "Payment recorded successfully",
	})
}

// List returns the user's payment history
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	filters := repository.PaymentFilters{
		Page:      1,
		Limit:     20,
		SortBy:    c.DefaultQuery("sortBy", "payment_date"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filters.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 100 {
		filters.Limit = limit
	}
	if propertyID, err := uuid.Parse(c.Query("propertyId")); err == nil {
		filters.PropertyID = &propertyID
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), ownerID, filters)
	if err != nil {
		ServiceErrorResponse(c, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, models.PaymentListResponse{
		Success:    true,
		Data:       payments,
		Pagination: NewPagination(filters.Page, filters.Limit, total),
	})
}
