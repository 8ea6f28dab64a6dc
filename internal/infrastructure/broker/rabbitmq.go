// Package broker wraps the RabbitMQ client behind the user-info direct
// exchange. Connection setup is the only place in the codebase with retry
// logic; everything above it treats the broker as fire-and-forget.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"doctor-appointment-platform/config"
	"doctor-appointment-platform/internal/service"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	ExchangeName = "user-info"
	QueueName    = "user-info-queue"

	connectAttempts = 5
	connectBackoff  = 5 * time.Second
)

type RabbitMQHandler struct {
	cfg  config.BrokerConfig
	log  *logrus.Logger
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbitMQHandler(cfg config.BrokerConfig, log *logrus.Logger) *RabbitMQHandler {
	return &RabbitMQHandler{cfg: cfg, log: log}
}

// setup dials the broker, retrying up to five times, and declares the direct
// exchange plus the durable queue bound to it.
func (h *RabbitMQHandler) setup() error {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", h.cfg.User, h.cfg.Password, h.cfg.Host, h.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		conn, err := amqp.Dial(url)
		if err != nil {
			lastErr = err
			h.log.Warnf("Broker connection attempt %d/%d failed: %+v", attempt, connectAttempts, err)
			time.Sleep(connectBackoff)
			continue
		}
		h.conn = conn
		break
	}
	if h.conn == nil {
		return fmt.Errorf("unable to connect to broker after %d attempts: %w", connectAttempts, lastErr)
	}

	ch, err := h.conn.Channel()
	if err != nil {
		h.teardown()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	h.ch = ch

	if err := ch.ExchangeDeclare(ExchangeName, "direct", false, false, false, false, nil); err != nil {
		h.teardown()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		h.teardown()
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(QueueName, QueueName, ExchangeName, false, nil); err != nil {
		h.teardown()
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	return nil
}

func (h *RabbitMQHandler) teardown() {
	if h.ch != nil {
		h.ch.Close()
		h.ch = nil
	}
	if h.conn != nil && !h.conn.IsClosed() {
		h.conn.Close()
	}
	h.conn = nil
}

// PublishUserCreated publishes the payload as a persistent message. Each
// publish opens and closes its own connection; registration volume does not
// justify a pooled channel.
func (h *RabbitMQHandler) PublishUserCreated(ctx context.Context, event service.UserCreatedEvent) error {
	if err := h.setup(); err != nil {
		return err
	}
	defer h.teardown()

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return h.ch.PublishWithContext(ctx, ExchangeName, QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Consume delivers queue messages to the callback until ctx is cancelled.
// Messages are acked once the callback returns; a callback error nacks
// without requeue so a poison message cannot wedge the queue.
func (h *RabbitMQHandler) Consume(ctx context.Context, handle func(context.Context, service.UserCreatedEvent) error) error {
	if err := h.setup(); err != nil {
		return err
	}
	defer h.teardown()

	deliveries, err := h.ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	h.log.Infof("Consuming queue %q", QueueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed by broker")
			}

			var event service.UserCreatedEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				h.log.Warnf("Discarding malformed message: %+v", err)
				delivery.Nack(false, false)
				continue
			}

			if err := handle(ctx, event); err != nil {
				h.log.Warnf("Failed to process message for user %d: %+v", event.ID, err)
				delivery.Nack(false, false)
				continue
			}

			delivery.Ack(false)
		}
	}
}
