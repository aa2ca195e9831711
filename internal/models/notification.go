package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationType categorizes a resident notification
type NotificationType string

const (
	NotificationGeneral      NotificationType = "general"
	NotificationReminder     NotificationType = "reminder"
	NotificationMaintenance  NotificationType = "maintenance"
	NotificationPayment      NotificationType = "payment"
	NotificationAnnouncement NotificationType = "announcement"
)

// NotificationStatus reflects the delivery outcome: "sent" means the record
// was persisted and any requested email went out, "failed" means the email
// call errored. The local record exists either way.
type NotificationStatus string

const (
	NotificationSent    NotificationStatus = "sent"
	NotificationPending NotificationStatus = "pending"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is an append-only record of a message to a resident
type Notification struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OwnerID    uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID `json:"propertyId" gorm:"type:uuid;not null;index"`

	PropertyName   string `json:"propertyName" gorm:"type:varchar(255);not null"`
	RecipientName  string `json:"recipientName" gorm:"type:varchar(255);not null"`
	RecipientEmail string `json:"recipientEmail" gorm:"type:varchar(255)"`

	Subject string           `json:"subject" gorm:"type:varchar(500);not null"`
	Message string           `json:"message" gorm:"type:text;not null"`
	Type    NotificationType `json:"type" gorm:"type:varchar(20);not null;default:'general';index"`

	Status       NotificationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ErrorMessage string             `json:"errorMessage,omitempty" gorm:"type:text"`
	Provider     string             `json:"provider,omitempty" gorm:"type:varchar(50)"`
	ProviderData datatypes.JSON     `json:"providerData,omitempty" gorm:"type:jsonb"`

	SentAt    *time.Time `json:"sentAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Notification) TableName() string { return "notifications" }

// MarkSent marks the notification as delivered (or recorded, when no
// email dispatch was requested)
func (n *Notification) MarkSent(provider string) {
	now := time.Now()
	n.Status = NotificationSent
	n.Provider = provider
	n.SentAt = &now
}

// MarkFailed marks the email dispatch as failed; the record itself stays
func (n *Notification) MarkFailed(provider, errMsg string) {
	now := time.Now()
	n.Status = NotificationFailed
	n.Provider = provider
	n.ErrorMessage = errMsg
	n.SentAt = &now
}

// ==========================================
// REQUEST/RESPONSE MODELS
// ==========================================

type SendNotificationRequest struct {
	PropertyID     uuid.UUID        `json:"propertyId" binding:"required"`
	Subject        string           `json:"subject" binding:"required"`
	Message        string           `json:"message" binding:"required"`
	Type           NotificationType `json:"type" binding:"required,oneof=general reminder maintenance payment announcement"`
	RecipientEmail *string          `json:"recipientEmail,omitempty" binding:"omitempty,email"`
}

type NotificationResponse struct {
	Success bool          `json:"success"`
	Data    *Notification `json:"data,omitempty"`
	Message string        `json:"message,omitempty"`
}

type NotificationListResponse struct {
	Success    bool           `json:"success"`
	Data       []Notification `json:"data,omitempty"`
	Message    string         `json:"message,omitempty"`
	Pagination *Pagination    `json:"pagination,omitempty"`
}
