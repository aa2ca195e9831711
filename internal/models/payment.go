package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod represents how a rent payment was made
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCard         PaymentMethod = "card"
	MethodCheck        PaymentMethod = "check"
)

// PaymentState represents the settlement state of a recorded payment
type PaymentState string

const (
	PaymentCompleted PaymentState = "completed"
	PaymentInFlight  PaymentState = "pending"
	PaymentFailed    PaymentState = "failed"
)

// Payment is an append-only record of a received rent payment.
// PropertyName and OccupantName are denormalized snapshots taken at
// creation time so history survives later edits to the property.
type Payment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OwnerID    uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID `json:"propertyId" gorm:"type:uuid;not null;index"`

	PropertyName string `json:"propertyName" gorm:"type:varchar(255);not null"`
	OccupantName string `json:"occupantName" gorm:"type:varchar(255)"`

	Amount        float64       `json:"amount" gorm:"not null"`
	PaymentDate   time.Time     `json:"paymentDate" gorm:"not null"`
	Method        PaymentMethod `json:"paymentMethod" gorm:"type:varchar(20);not null"`
	State         PaymentState  `json:"status" gorm:"type:varchar(20);not null;default:'completed'"`
	ReceiptNumber *string       `json:"receiptNumber,omitempty" gorm:"type:varchar(100)"`
	Notes         *string       `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Payment) TableName() string { return "payments" }

// ==========================================
// REQUEST/RESPONSE MODELS
// ==========================================

type RecordPaymentRequest struct {
	PropertyID    uuid.UUID     `json:"propertyId" binding:"required"`
	Amount        float64       `json:"amount" binding:"required,gt=0"`
	PaymentDate   time.Time     `json:"paymentDate" binding:"required"`
	Method        PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash bank_transfer card check"`
	ReceiptNumber *string       `json:"receiptNumber,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
}

type PaymentResponse struct {
	Success bool     `json:"success"`
	Data    *Payment `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
}

type PaymentListResponse struct {
	Success    bool        `json:"success"`
	Data       []Payment   `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
