package notify

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Maquila-api/internal/application/ports"
)

var _ ports.Notifier = (*AMQPNotifier)(nil)

// AMQPNotifier publica en un exchange fanout durable; la routing key es el evento.
type AMQPNotifier struct {
	conn     *amqp.Connection
	mu       sync.Mutex // amqp.Channel no admite publicaciones concurrentes
	channel  *amqp.Channel
	exchange string
}

// NewAMQPNotifier conecta y declara el exchange.
func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange %s: %w", exchange, err)
	}
	return &AMQPNotifier{conn: conn, channel: channel, exchange: exchange}, nil
}

// Notify publica el sobre JSON como mensaje persistente.
func (a *AMQPNotifier) Notify(ctx context.Context, n ports.Notification) error {
	body, err := encode(n)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	err = a.channel.PublishWithContext(ctx,
		a.exchange, // exchange
		n.Event,    // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         jobType(n),
			Timestamp:    n.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", n.Event, err)
	}
	return nil
}

// Close cierra canal y conexión.
func (a *AMQPNotifier) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.channel.Close(); err != nil {
		_ = a.conn.Close()
		return err
	}
	return a.conn.Close()
}
