package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys for booking lifecycle events
const (
	KeyBookingConfirmed = "booking.confirmed"
	KeyBookingCancelled = "booking.cancelled"
)

var errPublisherClosed = errors.New("publisher closed")

// Publisher sends JSON events to a topic exchange. A channel lost to a
// broker restart is re-dialed on the next publish.
type Publisher struct {
	exchange string
	connect  func() (*amqp.Connection, *amqp.Channel, error)

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// NewPublisher dials the broker and declares a durable topic exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	p := &Publisher{
		exchange: exchange,
		connect:  func() (*amqp.Connection, *amqp.Channel, error) { return dial(url, exchange) },
	}

	if _, err := p.channel(); err != nil {
		return nil, err
	}
	return p, nil
}

func dial(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return conn, ch, nil
}

// channel returns the open channel, dialing again when the previous one
// was closed by the broker.
func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errPublisherClosed
	}
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	p.release()
	conn, ch, err := p.connect()
	if err != nil {
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	body, err := Encode(v)
	if err != nil {
		return err
	}

	ch, err := p.channel()
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	return ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	return p.release()
}

// release closes the current channel and connection. Callers hold mu.
func (p *Publisher) release() error {
	var err error
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err = p.conn.Close()
		p.conn = nil
	}
	if errors.Is(err, amqp.ErrClosed) {
		return nil
	}
	return err
}

// Encode renders an event body
func Encode(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return body, nil
}

// Nop drops every event. It stands in when RABBITMQ_URL is empty.
type Nop struct{}

func (Nop) PublishJSON(context.Context, string, any) error { return nil }
func (Nop) Close() error                                  { return nil }
