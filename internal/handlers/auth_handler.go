package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mathvic456/real-estate-management/internal/middleware"
	"github.com/Mathvic456/real-estate-management/internal/models"
	"github.com/Mathvic456/real-estate-management/internal/services"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new account
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	data, err := h.authService.Signup(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		ServiceErrorResponse(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Success: true,
		Data:    data,
		Message: "Account created successfully",
	})
}

// Login authenticates an existing account
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	data, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		ServiceErrorResponse(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Data:    data,
		Message: "Logged in successfully",
	})
}

// RefreshRequest carries the refresh token for rotation
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh exchanges a valid refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	data, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Data:    data,
	})
}

// Logout deactivates the current session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := middleware.CurrentSessionID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Session context not found")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		ServiceErrorResponse(c, err, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Me returns the authenticated account
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User context not found")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		ServiceErrorResponse(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{
		Success: true,
		Data:    user,
	})
}
