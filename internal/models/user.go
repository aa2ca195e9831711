package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a dashboard account. Passwords are stored bcrypt-hashed.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Email        string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	IsDemo       bool       `json:"isDemo" gorm:"default:false"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Session represents an authenticated session backing a JWT pair
type Session struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	RefreshToken string    `json:"-" gorm:"type:text"` // SECURITY: never expose tokens in API responses
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	IsNewUser    bool      `json:"isNewUser" gorm:"default:false"` // set on signup, drives client onboarding
	IPAddress    string    `json:"-" gorm:"type:varchar(64)"`
	UserAgent    string    `json:"-" gorm:"type:varchar(512)"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "users" }

func (Session) TableName() string { return "sessions" }

// ==========================================
// REQUEST/RESPONSE MODELS
// ==========================================

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthData struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IsNewUser    bool   `json:"isNewUser"`
}

type AuthResponse struct {
	Success bool      `json:"success"`
	Data    *AuthData `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
}

type UserResponse struct {
	Success bool   `json:"success"`
	Data    *User  `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}
