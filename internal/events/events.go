// Package events publishes domain events for confirmed reservations and new
// newsletter subscribers. Publishing is best effort: a failed publish is
// logged and never fails the request that produced the event.
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bistro/pkg/config"
	"bistro/pkg/kafka"
	kafka_middleware "bistro/pkg/kafka/middleware"
	"bistro/pkg/logger"
	"bistro/pkg/middleware"
	"bistro/pkg/model"
)

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventNewsletterSubscribed = "newsletter.subscribed"

	SchemaVersion = "1"
	Source        = "bistro"
)

type ReservationConfirmed struct {
	ReservationID   string    `json:"reservation_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	PartySize       int       `json:"party_size"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	TableNumber     int       `json:"table_number"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type NewsletterSubscribed struct {
	SubscriberID string    `json:"subscriber_id"`
	Email        string    `json:"email"`
	Consent      bool      `json:"consent"`
	CreatedAt    time.Time `json:"created_at"`
}

type Publisher interface {
	ReservationConfirmed(ctx context.Context, reservation *model.Reservation, specialRequests *string)
	NewsletterSubscribed(ctx context.Context, subscriber *model.Subscriber)
	Close() error
}

// Sender is the part of kafka.Producer the publisher needs.
type Sender interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	reservations Sender
	newsletter   Sender
	timeout      time.Duration
	log          *logger.Logger
}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when no brokers
// are configured.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if cfg.Kafka == nil || !cfg.Kafka.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, domain events disabled")
		return NewNoopPublisher(), nil
	}

	reservations, err := kafka.NewProducer(cfg.Kafka, cfg.KafkaReservationsTopic, cfg.Kafka.DLQTopic(cfg.KafkaReservationsTopic), cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservations producer: %w", err)
	}
	newsletter, err := kafka.NewProducer(cfg.Kafka, cfg.KafkaNewsletterTopic, cfg.Kafka.DLQTopic(cfg.KafkaNewsletterTopic), cfg.Log)
	if err != nil {
		_ = reservations.Close()
		return nil, fmt.Errorf("failed to create newsletter producer: %w", err)
	}

	logging := kafka_middleware.LoggingProducerMiddleware(cfg.Log)
	reservations.Use(logging)
	newsletter.Use(logging)

	return NewKafkaPublisher(reservations, newsletter, cfg.Kafka.PublishTimeout, cfg.Log), nil
}

func NewKafkaPublisher(reservations, newsletter Sender, timeout time.Duration, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		reservations: reservations,
		newsletter:   newsletter,
		timeout:      timeout,
		log:          log,
	}
}

func (p *kafkaPublisher) ReservationConfirmed(ctx context.Context, reservation *model.Reservation, specialRequests *string) {
	payload := ReservationConfirmed{
		ReservationID:   reservation.ID,
		Name:            reservation.Name,
		Email:           reservation.Email,
		Phone:           reservation.Phone,
		PartySize:       reservation.PartySize,
		Date:            reservation.Date,
		Time:            reservation.Time,
		TableNumber:     reservation.TableNumber,
		SpecialRequests: specialRequests,
		CreatedAt:       reservation.CreatedAt,
	}
	p.publish(ctx, p.reservations, EventReservationConfirmed, reservation.Date+"T"+reservation.Time, payload)
}

func (p *kafkaPublisher) NewsletterSubscribed(ctx context.Context, subscriber *model.Subscriber) {
	payload := NewsletterSubscribed{
		SubscriberID: subscriber.ID,
		Email:        subscriber.Email,
		Consent:      subscriber.Consent,
		CreatedAt:    subscriber.CreatedAt,
	}
	p.publish(ctx, p.newsletter, EventNewsletterSubscribed, subscriber.Email, payload)
}

func (p *kafkaPublisher) publish(ctx context.Context, sender Sender, eventType, key string, payload any) {
	requestID := middleware.RequestIDFromContext(ctx)

	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithCorrelationID(requestID).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		p.log.Error("Failed to build event", "event_type", eventType, "request_id", requestID, "error", err)
		return
	}

	// The request may already be finishing; the publish gets its own deadline.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := sender.Publish(pubCtx, msg); err != nil {
		p.log.Warn("Failed to publish event",
			"event_type", eventType,
			"event_id", msg.GetEventID(),
			"request_id", requestID,
			"error", err,
		)
	}
}

func (p *kafkaPublisher) Close() error {
	return errors.Join(p.reservations.Close(), p.newsletter.Close())
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) ReservationConfirmed(context.Context, *model.Reservation, *string) {}

func (noopPublisher) NewsletterSubscribed(context.Context, *model.Subscriber) {}

func (noopPublisher) Close() error { return nil }
