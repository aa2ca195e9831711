package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyStatus represents the occupancy state of a property
type PropertyStatus string

const (
	PropertyVacant      PropertyStatus = "vacant"
	PropertyOccupied    PropertyStatus = "occupied"
	PropertyMaintenance PropertyStatus = "maintenance"
)

// PropertyType represents the kind of rental unit
type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeCommercial PropertyType = "commercial"
	TypeLand       PropertyType = "land"
)

// PaymentStatus summarizes whether the current rent period is settled.
// It is derived by the service layer; the only way a user sets it directly
// is the explicit override on the edit form.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

// Property represents a rental property owned by exactly one user
type Property struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OwnerID uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`

	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	MonthlyRent float64        `json:"monthlyRent" gorm:"not null"`
	Status      PropertyStatus `json:"status" gorm:"type:varchar(20);not null;default:'vacant';index"`
	Type        PropertyType   `json:"propertyType" gorm:"type:varchar(20);not null;default:'apartment'"`

	// Occupant snapshot; presence of a name is the signal that the unit is let
	OccupantName  *string `json:"occupantName,omitempty" gorm:"type:varchar(255)"`
	OccupantEmail *string `json:"occupantEmail,omitempty" gorm:"type:varchar(255)"`
	OccupantPhone *string `json:"occupantPhone,omitempty" gorm:"type:varchar(50)"`

	LeaseStart *time.Time `json:"leaseStart,omitempty"`
	LeaseEnd   *time.Time `json:"leaseEnd,omitempty"`

	PaymentStatus   PaymentStatus `json:"paymentStatus" gorm:"type:varchar(20);not null;default:'pending';index"`
	LastPaymentDate *time.Time    `json:"lastPaymentDate,omitempty"`
	NextPaymentDue  *time.Time    `json:"nextPaymentDue,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Property) TableName() string { return "properties" }

// HasOccupant reports whether an occupant is assigned
func (p *Property) HasOccupant() bool {
	return p.OccupantName != nil && *p.OccupantName != ""
}

// ==========================================
// REQUEST/RESPONSE MODELS
// ==========================================

type CreatePropertyRequest struct {
	Name          string         `json:"name" binding:"required"`
	MonthlyRent   float64        `json:"monthlyRent" binding:"required,gt=0"`
	Status        PropertyStatus `json:"status" binding:"required,oneof=vacant occupied maintenance"`
	Type          PropertyType   `json:"propertyType" binding:"required,oneof=apartment house commercial land"`
	OccupantName  *string        `json:"occupantName,omitempty"`
	OccupantEmail *string        `json:"occupantEmail,omitempty" binding:"omitempty,email"`
	OccupantPhone *string        `json:"occupantPhone,omitempty"`
	LeaseStart    *time.Time     `json:"leaseStart,omitempty"`
	LeaseEnd      *time.Time     `json:"leaseEnd,omitempty"`
}

// UpdatePropertyRequest is a full replace of the editable fields.
// PaymentStatus is the explicit manual override: nil leaves the derived
// value untouched.
type UpdatePropertyRequest struct {
	Name          string         `json:"name" binding:"required"`
	MonthlyRent   float64        `json:"monthlyRent" binding:"required,gt=0"`
	Status        PropertyStatus `json:"status" binding:"required,oneof=vacant occupied maintenance"`
	Type          PropertyType   `json:"propertyType" binding:"required,oneof=apartment house commercial land"`
	OccupantName  *string        `json:"occupantName,omitempty"`
	OccupantEmail *string        `json:"occupantEmail,omitempty" binding:"omitempty,email"`
	OccupantPhone *string        `json:"occupantPhone,omitempty"`
	LeaseStart    *time.Time     `json:"leaseStart,omitempty"`
	LeaseEnd      *time.Time     `json:"leaseEnd,omitempty"`
	PaymentStatus *PaymentStatus `json:"paymentStatus,omitempty" binding:"omitempty,oneof=paid pending overdue"`
}

// DashboardMetrics aggregates counts over the owner's property set.
// Recomputed from the full set on each request, never cached.
type DashboardMetrics struct {
	TotalProperties int     `json:"totalProperties"`
	Occupied        int     `json:"occupied"`
	Vacant          int     `json:"vacant"`
	TotalRent       float64 `json:"totalRent"`
	Overdue         int     `json:"overdue"`
	ExpiringSoon    int     `json:"expiringSoon"`
}

type PropertyResponse struct {
	Success bool      `json:"success"`
	Data    *Property `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrevious"`
}

type PropertyListResponse struct {
	Success    bool        `json:"success"`
	Data       []Property  `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type MetricsResponse struct {
	Success bool              `json:"success"`
	Data    *DashboardMetrics `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
}
