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

// PropertyHandler handles property HTTP requests
type PropertyHandler struct {
	propertyService *services.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Create adds a property to the authenticated user's portfolio
// POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	var req models.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		health.RecordPropertyOperation("create", false)
		ServiceErrorResponse(c, err, "Failed to create property")
		return
	}
	health.RecordPropertyOperation("create", true)

	if pub := events.GetPublisher(); pub != nil {
		pub.PublishPropertyCreated(c.Request.Context(), &events.PropertyEvent{
			PropertyID: property.ID,
			OwnerID:    ownerID,
			Name:       property.Name,
			Status:     string(property.Status),
			Timestamp:  time.Now().UTC(),
		})
	}

	c.JSON(http.StatusCreated, models.PropertyResponse{
		Success: true,
		Data:    property,
		Message: "Property created successfully",
	})
}

// Get returns a single property
// GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID")
		return
	}

	property, err := h.propertyService.Get(c.Request.Context(), ownerID, propertyID)
	if err != nil {
		ServiceErrorResponse(c, err, "Failed to get property")
		return
	}

	c.JSON(http.StatusOK, models.PropertyResponse{
		Success: true,
		Data:    property,
	})
}

// List returns the user's properties with filtering and pagination
// GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	filters := parsePropertyFilters(c)
	properties, total, err := h.propertyService.List(c.Request.Context(), ownerID, filters)
	if err != nil {
		ServiceErrorResponse(c, err, "Failed to list properties")
		return
	}

	c.JSON(http.StatusOK, models.PropertyListResponse{
		Success:    true,
		Data:       properties,
		Pagination: NewPagination(filters.Page, filters.Limit, total),
	})
}

// Update replaces a property's editable fields
// PUT /api/v1/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID")
		return
	}

	var req models.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), ownerID, propertyID, &req)
	if err != nil {
		health.RecordPropertyOperation("update", false)
		ServiceErrorResponse(c, err, "Failed to update property")
		return
	}
	health.RecordPropertyOperation("update", true)

	if pub := events.GetPublisher(); pub != nil {
		pub.PublishPropertyUpdated(c.Request.Context(), &events.PropertyEvent{
			PropertyID: property.ID,
			OwnerID:    ownerID,
			Name:       property.Name,
			Status:     string(property.Status),
			Timestamp:  time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, models.PropertyResponse{
		Success: true,
		Data:    property,
		Message: "Property updated successfully",
	})
}

// Delete removes a property; payment and notification history survives
// DELETE /api/v1/properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), ownerID, propertyID); err != nil {
		health.RecordPropertyOperation("delete", false)
		ServiceErrorResponse(c, err, "Failed to delete property")
		return
	}
	health.RecordPropertyOperation("delete", true)

	if pub := events.GetPublisher(); pub != nil {
		pub.PublishPropertyDeleted(c.Request.Context(), &events.PropertyEvent{
			PropertyID: propertyID,
			OwnerID:    ownerID,
			Timestamp:  time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Property deleted successfully",
	})
}

// Metrics returns the dashboard summary for the user's portfolio
// GET /api/v1/properties/metrics
func (h *PropertyHandler) Metrics(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	metrics, err := h.propertyService.Metrics(c.Request.Context(), ownerID)
	if err != nil {
		ServiceErrorResponse(c, err, "Failed to compute metrics")
		return
	}

	c.JSON(http.StatusOK, models.MetricsResponse{
		Success: true,
		Data:    metrics,
	})
}

func parsePropertyFilters(c *gin.Context) repository.PropertyFilters {
	filters := repository.PropertyFilters{
		Page:      1,
		Limit:     20,
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filters.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 100 {
		filters.Limit = limit
	}
	if status := c.Query("status"); status != "" {
		s := models.PropertyStatus(status)
		filters.Status = &s
	}
	if propertyType := c.Query("propertyType"); propertyType != "" {
		t := models.PropertyType(propertyType)
		filters.Type = &t
	}
	if paymentStatus := c.Query("paymentStatus"); paymentStatus != "" {
		p := models.PaymentStatus(paymentStatus)
		filters.PaymentStatus = &p
	}

	return filters
}
