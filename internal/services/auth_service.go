package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Mathvic456/real-estate-management/internal/cache"
	"github.com/Mathvic456/real-estate-management/internal/models"
	"github.com/Mathvic456/real-estate-management/internal/repository"
)

// Demo account credentials, seeded at migration time
const (
	DemoEmail    = "demo@rentals.test"
	DemoPassword = "demo1234"
	DemoName     = "Demo Landlord"
)

type AuthService struct {
	repo            repository.UserRepository
	passwordService *PasswordService
	jwtService      *JWTService
	sessionCache    *cache.SessionCache
	logger          *logrus.Logger
}

func NewAuthService(
	repo repository.UserRepository,
	passwordService *PasswordService,
	jwtService *JWTService,
	sessionCache *cache.SessionCache,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		repo:            repo,
		passwordService: passwordService,
		jwtService:      jwtService,
		sessionCache:    sessionCache,
		logger:          logger,
	}
}

// Signup registers a new account and opens a session flagged as new,
// which drives the client-side onboarding tour
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest, ipAddress, userAgent string) (*models.AuthData, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, NewConflictError("user", "email is already registered")
	}

	hash, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, NewValidationError("password", err.Error())
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.openSession(ctx, user, true, ipAddress, userAgent)
}

// Login authenticates a user against the stored bcrypt hash
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest, ipAddress, userAgent string) (*models.AuthData, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.passwordService.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		s.logger.WithError(err).Warn("failed to update last login time")
	}

	return s.openSession(ctx, user, false, ipAddress, userAgent)
}

// Refresh rotates the token pair. The presented refresh token must match
// the one stored on its active session row.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.AuthData, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: malformed session id")
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: session not found")
	}
	if !session.IsActive || session.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("invalid refresh token: session expired")
	}
	if session.RefreshToken != refreshToken {
		// A stale token after rotation; treat as revoked
		return nil, fmt.Errorf("invalid refresh token: token superseded")
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(user, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	session.RefreshToken = newRefreshToken
	session.ExpiresAt = time.Now().Add(s.jwtService.GetRefreshTokenExpiry())
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	s.sessionCache.Set(ctx, session.ID, true)

	return &models.AuthData{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		IsNewUser:    false,
	}, nil
}

// Logout deactivates the session referenced by the access token claims
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.DeactivateSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}
	s.sessionCache.Invalidate(ctx, sessionID)
	return nil
}

// GetUser returns the account for the given id
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("user")
		}
		return nil, err
	}
	return user, nil
}

// ValidateToken parses an access token and confirms its session is active
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	active, err := s.isSessionActive(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, fmt.Errorf("session is no longer active")
	}

	return claims, nil
}

// isSessionActive checks the cache first, then the session row
func (s *AuthService) isSessionActive(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	if active, ok := s.sessionCache.Get(ctx, sessionID); ok {
		return active, nil
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get session: %w", err)
	}

	active := session.IsActive && session.ExpiresAt.After(time.Now())
	s.sessionCache.Set(ctx, sessionID, active)
	return active, nil
}

// openSession creates a session row, caches it and issues the token pair
func (s *AuthService) openSession(ctx context.Context, user *models.User, isNewUser bool, ipAddress, userAgent string) (*models.AuthData, error) {
	sessionID := uuid.New()
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	session := &models.Session{
		ID:           sessionID,
		UserID:       user.ID,
		RefreshToken: refreshToken,
		IsActive:     true,
		IsNewUser:    isNewUser,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		ExpiresAt:    time.Now().Add(s.jwtService.GetRefreshTokenExpiry()),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionCache.Set(ctx, sessionID, true)

	return &models.AuthData{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IsNewUser:    isNewUser,
	}, nil
}

// SeedDemoAccount ensures the hardcoded demo login exists. Called once at
// boot after migrations.
func SeedDemoAccount(ctx context.Context, repo repository.UserRepository, passwordService *PasswordService, logger *logrus.Logger) error {
	exists, err := repo.EmailExists(ctx, DemoEmail)
	if err != nil {
		return fmt.Errorf("failed to check demo account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := passwordService.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        DemoEmail,
		Name:         DemoName,
		PasswordHash: hash,
		IsDemo:       true,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create demo account: %w", err)
	}

	logger.WithField("email", DemoEmail).Info("demo account seeded")
	return nil
}
