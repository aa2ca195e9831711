package services

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned on login failure. The message is
// deliberately identical for unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError represents a validation failure on a named field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}

// ConflictError represents a resource conflict (e.g., already exists)
type ConflictError struct {
	Resource string `json:"resource"`
	Message  string `json:"message"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Message)
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{Resource: resource, Message: message}
}

// IsConflictError checks if an error is a ConflictError
func IsConflictError(err error) (*ConflictError, bool) {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr, true
	}
	return nil, false
}

// NotFoundError represents a missing (or not owned) resource
type NotFoundError struct {
	Resource string `json:"resource"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFoundError creates a new not-found error
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// IsNotFoundError checks if an error is a NotFoundError
func IsNotFoundError(err error) (*NotFoundError, bool) {
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return notFoundErr, true
	}
	return nil, false
}

// DeliveryError signals that the local notification record was persisted
// but the email dispatch failed. Callers surface it without rolling back.
type DeliveryError struct {
	Provider string `json:"provider"`
	Message  string `json:"message"`
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery via %s failed: %s", e.Provider, e.Message)
}

func NewDeliveryError(provider, message string) *DeliveryError {
	return &DeliveryError{Provider: provider, Message: message}
}

// IsDeliveryError checks if an error is a DeliveryError
func IsDeliveryError(err error) (*DeliveryError, bool) {
	var deliveryErr *DeliveryError
	if errors.As(err, &deliveryErr) {
		return deliveryErr, true
	}
	return nil, false
}
