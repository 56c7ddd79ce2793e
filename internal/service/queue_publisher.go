// Package service publishes domain events to RabbitMQ. Errors are
// logged and returned so callers can ignore a broker outage without
// failing the originating request.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/haeun-dev/campus-life-server/internal/queue"
)

// Publisher sends events to the broker. It dials per publish: the
// verification endpoints fire rarely enough that holding a connection
// open buys nothing over the simpler reconnect-free path.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// PublishVerificationRequested enqueues one verification request as a
// persistent message on the durable queue.
func (p *Publisher) PublishVerificationRequested(ctx context.Context, ev queue.VerificationRequestedEvent) error {
	if p.url == "" {
		return errors.New("no broker url configured")
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.VerificationQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.VerificationQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
