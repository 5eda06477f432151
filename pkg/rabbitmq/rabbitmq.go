package rabbitmq

import (
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

// ExchangeName is the fanout exchange carrying spark change events. Every
// subscriber gets every event; payloads are advisory only, consumers are
// expected to re-fetch rather than apply them.
const ExchangeName = "sparks.changes"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient creates a new RabbitMQ client. It connects to RabbitMQ, sets up
// a channel and declares the change-event fanout exchange.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		"fanout",     // kind: every bound queue sees every event
		true,         // durable
		false,        // auto-delete
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s exchange: %w", ExchangeName, err)
	}

	log.Printf("RabbitMQ client connected and %s exchange declared.", ExchangeName)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a change event to the fanout exchange. The routing key names
// the event kind (e.g. "spark.created") but does not affect delivery.
func (c *Client) Publish(routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		ExchangeName, // exchange
		routingKey,   // routing key (informational under fanout)
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent spark change event %s: %s", routingKey, body)
	return nil
}

// Subscription is a live change-event listener. It owns an exclusive
// auto-delete queue bound to the fanout exchange; Unsubscribe tears both
// down.
type Subscription struct {
	client    *Client
	queueName string
	tag       string
}

// Subscribe binds a fresh exclusive queue to the change-event exchange and
// invokes messageHandler for every delivery. Handler errors Nack the message
// without requeue (the next event triggers a re-fetch anyway); successful
// handling Acks.
func (c *Client) Subscribe(messageHandler func(msg amqp.Delivery) error) (*Subscription, error) {
	if c.channel == nil {
		return nil, fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		"",    // name: broker-generated
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare subscription queue: %w", err)
	}

	if err := c.channel.QueueBind(queue.Name, "", ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind subscription queue: %w", err)
	}

	tag := fmt.Sprintf("sparks-sub-%s", queue.Name)
	msgs, err := c.channel.Consume(
		queue.Name, // queue
		tag,        // consumer tag
		false,      // auto-ack: manual acknowledgement
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := messageHandler(msg); err != nil {
				log.Printf("Error processing change event %d: %v", msg.DeliveryTag, err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
			} else {
				if ackErr := msg.Ack(false); ackErr != nil {
					log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
				}
			}
		}
	}()

	return &Subscription{client: c, queueName: queue.Name, tag: tag}, nil
}

// Unsubscribe cancels the consumer and drops its queue. The deliveries
// channel closes once the broker confirms the cancel.
func (s *Subscription) Unsubscribe() error {
	if err := s.client.channel.Cancel(s.tag, false); err != nil {
		return fmt.Errorf("failed to cancel consumer %s: %w", s.tag, err)
	}
	if _, err := s.client.channel.QueueDelete(s.queueName, false, false, false); err != nil {
		return fmt.Errorf("failed to delete subscription queue %s: %w", s.queueName, err)
	}
	return nil
}
