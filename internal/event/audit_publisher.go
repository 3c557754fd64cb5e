package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Plauto679/taiico-crm/internal/models"
)

const AuditQueue = "crm_audit_events"

// NotificationAuditEvent records one delivered renewal notice for the audit
// trail consumers.
type NotificationAuditEvent struct {
	Type         string             `json:"type"`
	Carrier      models.Carrier     `json:"carrier"`
	ProductLine  models.ProductLine `json:"product_line"`
	PolicyNumber string             `json:"policy_number"`
	Recipient    string             `json:"recipient"`
	SentAt       time.Time          `json:"sent_at"`
}

// AuditPublisher publishes audit events. A nil publisher is valid and drops
// events, so the service runs without a broker.
type AuditPublisher struct {
	conn *RabbitMQConnection
}

// NewAuditPublisher creates a new audit event publisher
func NewAuditPublisher(conn *RabbitMQConnection) *AuditPublisher {
	return &AuditPublisher{conn: conn}
}

// PublishNotificationSent publishes a notification audit event to the audit
// queue. Callers treat failures as best effort.
func (p *AuditPublisher) PublishNotificationSent(ctx context.Context, event NotificationAuditEvent) error {
	if p == nil || p.conn == nil {
		return nil
	}

	event.Type = "renewal.notification.sent"
	if event.SentAt.IsZero() {
		event.SentAt = time.Now()
	}

	_, err := p.conn.Channel.QueueDeclare(
		AuditQueue, // queue name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",         // exchange
		AuditQueue, // routing key (queue name)
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish audit event: %w", err)
	}

	slog.Info("Audit event published",
		"queue", AuditQueue,
		"policy_number", event.PolicyNumber,
	)
	return nil
}
