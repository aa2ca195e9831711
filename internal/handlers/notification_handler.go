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

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Send records a notification and attempts email delivery. A delivery
// failure still returns the persisted record, with a 502 status.
// POST /api/v1/notifications
func (h *NotificationHandler) Send(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	var req models.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	notification, err := h.notificationService.Send(c.Request.Context(), ownerID, &req)
	if err != nil {
		if deliveryErr, isDelivery := services.IsDeliveryError(err); isDelivery {
			health.RecordNotificationOperation("send", false)
			c.JSON(http.StatusBadGateway, models.NotificationResponse{
				Success: false,
				Data:    notification,
				Message: deliveryErr.Error(),
			})
			return
		}
		health.RecordNotificationOperation("send", false)
		ServiceErrorResponse(c, err, "Failed to send notification")
		return
	}
	health.RecordNotificationOperation("send", true)

	if pub := events.GetPublisher(); pub != nil {
		pub.PublishNotificationSent(c.Request.Context(), &events.NotificationEvent{
			NotificationID: notification.ID,
			PropertyID:     notification.PropertyID,
			OwnerID:        ownerID,
			Status:         string(notification.Status),
			Timestamp:      time.Now().UTC(),
		})
	}

	c.JSON(http.StatusCreated, models.NotificationResponse{
		Success: true,
		Data:    notification,
		Message: "Notification sent successfully",
	})
}

// List returns the user's notification history
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	filters := repository.NotificationFilters{
		Page:  1,
		Limit: 20,
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
	if notificationType := c.Query("type"); notificationType != "" {
		t := models.NotificationType(notificationType)
		filters.Type = &t
	}
	if status := c.Query("status"); status != "" {
		s := models.NotificationStatus(status)
		filters.Status = &s
	}

	notifications, total, err := h.notificationService.List(c.Request.Context(), ownerID, filters)
	if err != nil {
		ServiceErrorResponse(c, err, "Failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, models.NotificationListResponse{
		Success:    true,
		Data:       notifications,
		Pagination: NewPagination(filters.Page, filters.Limit, total),
	})
}
