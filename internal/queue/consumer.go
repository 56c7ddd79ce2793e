package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// VerificationQueueName is the durable queue carrying verification
// requests from the API to the vendor dispatch worker.
const VerificationQueueName = "verification.requested"

// StartVerificationConsumer connects to RabbitMQ, declares the
// verification queue (durable) and consumes it until the broker URL is
// empty or the process exits. It runs a reconnect loop with backoff;
// processing errors are logged and the offending message rejected
// without requeue so a poison message cannot wedge the worker.
func StartVerificationConsumer(url string) error {
	if url == "" {
		return errors.New("no broker url configured")
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("verification-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("verification-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(VerificationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(VerificationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("verification-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// handleMessage is the vendor boundary. The actual SMS / univ-cert API
// calls live behind it; here the dispatch is recorded so the rest of
// the pipeline is observable without vendor credentials.
func handleMessage(body []byte) error {
	var ev VerificationRequestedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Channel != ChannelSMS && ev.Channel != ChannelSchoolEmail {
		return fmt.Errorf("unknown channel %q", ev.Channel)
	}
	log.Printf("verification dispatch | channel=%s | user_id=%d | destination=%s | requested_at=%s",
		ev.Channel, ev.UserID, ev.Destination, ev.RequestedAt)
	return nil
}
