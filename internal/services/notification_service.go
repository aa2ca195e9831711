package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Mathvic456/real-estate-management/internal/models"
	"github.com/Mathvic456/real-estate-management/internal/repository"
)

type NotificationService struct {
	notifications repository.NotificationRepository
	properties    repository.PropertyRepository
	emailProvider EmailProvider
	logger        *logrus.Logger
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	properties repository.PropertyRepository,
	emailProvider EmailProvider,
	logger *logrus.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		properties:    properties,
		emailProvider: emailProvider,
		logger:        logger,
	}
}

// Send records a notification for a property's occupant and attempts email
// delivery. The local record is written first and survives a delivery
// failure; when the email call errors the returned notification carries the
// failed status alongside a DeliveryError.
func (s *NotificationService) Send(ctx context.Context, ownerID uuid.UUID, req *models.SendNotificationRequest) (*models.Notification, error) {
	property, err := s.properties.GetByID(ctx, ownerID, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("property")
		}
		return nil, err
	}

	if !property.HasOccupant() {
		return nil, NewValidationError("propertyId", "property has no occupant to notify")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, NewValidationError("subject", "subject must not be empty")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, NewValidationError("message", "message must not be empty")
	}

	recipientEmail := ""
	if req.RecipientEmail != nil {
		recipientEmail = *req.RecipientEmail
	} else if property.OccupantEmail != nil {
		recipientEmail = *property.OccupantEmail
	}

	notification := &models.Notification{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		PropertyID:     property.ID,
		PropertyName:   property.Name,
		RecipientName:  *property.OccupantName,
		RecipientEmail: recipientEmail,
		Subject:        req.Subject,
		Message:        req.Message,
		Type:           req.Type,
		Status:         models.NotificationPending,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	// No provider configured or no address to deliver to: the record itself
	// is the notification.
	if s.emailProvider == nil || recipientEmail == "" {
		notification.MarkSent("")
		if err := s.notifications.Update(ctx, notification); err != nil {
			return nil, fmt.Errorf("failed to update notification: %w", err)
		}
		return notification, nil
	}

	result, sendErr := s.emailProvider.Send(ctx, &EmailMessage{
		To:      recipientEmail,
		ToName:  notification.RecipientName,
		Subject: req.Subject,
		Body:    req.Message,
	})

	providerName := s.emailProvider.GetName()
	if sendErr != nil {
		notification.MarkFailed(providerName, sendErr.Error())
		s.logger.WithError(sendErr).WithFields(logrus.Fields{
			"notification_id": notification.ID,
			"provider":        providerName,
		}).Warn("email delivery failed")
	} else {
		notification.MarkSent(providerName)
		if result.ProviderData != nil {
			if data, err := json.Marshal(result.ProviderData); err == nil {
				notification.ProviderData = datatypes.JSON(data)
			}
		}
	}

	if err := s.notifications.Update(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	if sendErr != nil {
		return notification, NewDeliveryError(providerName, sendErr.Error())
	}
	return notification, nil
}

func (s *NotificationService) List(ctx context.Context, ownerID uuid.UUID, filters repository.NotificationFilters) ([]models.Notification, int64, error) {
	return s.notifications.List(ctx, ownerID, filters)
}
