// Package event publishes domain events to RabbitMQ. Publishing is best
// effort: errors are logged and returned so callers can ignore them without
// interrupting the request flow.
package event

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const orderCreatedQueue = "order.created"

type OrderCreatedEvent struct {
	OrderID     uint64    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uint64    `json:"customer_id"`
	TotalPrice  int64     `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher dials the broker per publish so a broker restart never leaves a
// stale connection behind. A Publisher with an empty URL publishes nothing.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	if p == nil || p.url == "" {
		return nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq dial failed")
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq channel open failed")
		return err
	}
	defer ch.Close()

	// Durable so messages survive broker restarts.
	if _, err = ch.QueueDeclare(orderCreatedQueue, true, false, false, false, nil); err != nil {
		logrus.WithError(err).Warn("rabbitmq queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err = ch.PublishWithContext(ctx, "", orderCreatedQueue, false, false, pub); err != nil {
		logrus.WithError(err).WithField("order_id", event.OrderID).Warn("rabbitmq publish failed")
		return err
	}

	return nil
}
