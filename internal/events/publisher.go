package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event subjects published on the RENTAL_EVENTS stream
const (
	SubjectPropertyCreated  = "rentals.property.created"
	SubjectPropertyUpdated  = "rentals.property.updated"
	SubjectPropertyDeleted  = "rentals.property.deleted"
	SubjectPaymentRecorded  = "rentals.payment.recorded"
	SubjectNotificationSent = "rentals.notification.sent"
)

var (
	publisher     *Publisher
	publisherOnce sync.Once
	publisherMu   sync.RWMutex
)

// Publisher emits domain events to NATS JetStream. All publishes are
// best-effort: failures are logged and never surfaced to the caller.
type Publisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// PropertyEvent is the payload for property lifecycle events
type PropertyEvent struct {
	PropertyID uuid.UUID `json:"propertyId"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// PaymentEvent is the payload for recorded payments
type PaymentEvent struct {
	PaymentID  uuid.UUID `json:"paymentId"`
	PropertyID uuid.UUID `json:"propertyId"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// NotificationEvent is the payload for dispatched notifications
type NotificationEvent struct {
	NotificationID uuid.UUID `json:"notificationId"`
	PropertyID     uuid.UUID `json:"propertyId"`
	OwnerID        uuid.UUID `json:"ownerId"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// InitPublisher initializes the singleton NATS publisher. When NATS_URL is
// not set, event publishing stays disabled and GetPublisher returns nil.
func InitPublisher(logger *logrus.Logger) error {
	var initErr error
	publisherOnce.Do(func() {
		natsURL := os.Getenv("NATS_URL")
		if natsURL == "" {
			logger.Warn("NATS_URL not set, event publishing disabled")
			return
		}

		opts := []nats.Option{
			nats.Name("rental-service"),
			nats.Timeout(10 * time.Second),
			nats.RetryOnFailedConnect(true),
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2 * time.Second),
			nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
				if err != nil {
					logger.WithError(err).Warn("NATS disconnected")
				}
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
			}),
		}

		conn, err := nats.Connect(natsURL, opts...)
		if err != nil {
			initErr = fmt.Errorf("failed to connect to NATS: %w", err)
			return
		}

		js, err := conn.JetStream(nats.PublishAsyncMaxPending(256))
		if err != nil {
			conn.Close()
			initErr = fmt.Errorf("failed to create JetStream context: %w", err)
			return
		}

		if _, err := js.AddStream(&nats.StreamConfig{
			Name:        "RENTAL_EVENTS",
			Description: "Property, payment and notification events",
			Subjects:    []string{"rentals.>"},
			Storage:     nats.FileStorage,
			MaxAge:      7 * 24 * time.Hour,
		}); err != nil && err != nats.ErrStreamNameAlreadyInUse {
			// Stream might be created by another instance
			logger.WithError(err).Warn("failed to ensure RENTAL_EVENTS stream")
		}

		publisherMu.Lock()
		publisher = &Publisher{
			conn:   conn,
			js:     js,
			logger: logger.WithField("component", "events.publisher"),
		}
		publisherMu.Unlock()

		logger.Info("NATS events publisher initialized")
	})
	return initErr
}

// GetPublisher returns the singleton publisher instance, nil when disabled
func GetPublisher() *Publisher {
	publisherMu.RLock()
	defer publisherMu.RUnlock()
	return publisher
}

// PublishPropertyCreated publishes a property created event
func (p *Publisher) PublishPropertyCreated(ctx context.Context, event *PropertyEvent) {
	p.publish(ctx, SubjectPropertyCreated, event)
}

// PublishPropertyUpdated publishes a property updated event
func (p *Publisher) PublishPropertyUpdated(ctx context.Context, event *PropertyEvent) {
	p.publish(ctx, SubjectPropertyUpdated, event)
}

// PublishPropertyDeleted publishes a property deleted event
func (p *Publisher) PublishPropertyDeleted(ctx context.Context, event *PropertyEvent) {
	p.publish(ctx, SubjectPropertyDeleted, event)
}

// PublishPaymentRecorded publishes a payment recorded event
func (p *Publisher) PublishPaymentRecorded(ctx context.Context, event *PaymentEvent) {
	p.publish(ctx, SubjectPaymentRecorded, event)
}

// PublishNotificationSent publishes a notification dispatched event
func (p *Publisher) PublishNotificationSent(ctx context.Context, event *NotificationEvent) {
	p.publish(ctx, SubjectNotificationSent, event)
}

func (p *Publisher) publish(ctx context.Context, subject string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("failed to marshal event")
		return
	}
	if _, err := p.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("failed to publish event")
	}
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the publisher connection
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
		p.conn.Close()
	}
}
