package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mathvic456/real-estate-management/internal/models"
	"github.com/Mathvic456/real-estate-management/internal/services"
)

// ErrorResponse sends a standardized error response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

// ServiceErrorResponse maps typed service errors onto HTTP status codes.
// Unrecognized errors become a 500 with a generic message.
func ServiceErrorResponse(c *gin.Context, err error, fallbackMessage string) {
	if validationErr, ok := services.IsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": validationErr.Message,
			"field":   validationErr.Field,
		})
		return
	}
	if conflictErr, ok := services.IsConflictError(err); ok {
		ErrorResponse(c, http.StatusConflict, conflictErr.Message)
		return
	}
	if notFoundErr, ok := services.IsNotFoundError(err); ok {
		ErrorResponse(c, http.StatusNotFound, notFoundErr.Error())
		return
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}
	ErrorResponse(c, http.StatusInternalServerError, fallbackMessage)
}

// NewPagination builds pagination metadata for a list response
func NewPagination(page, limit int, total int64) *models.Pagination {
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
