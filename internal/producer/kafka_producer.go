package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"backoffice-service/internal/service"

	"github.com/segmentio/kafka-go"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// Envelope is the message value; Type tells consumers how to decode Data.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventProducer implements service.EventBus on top of a Kafka topic.
// Messages are keyed by order id so one order's events stay ordered.
type OrderEventProducer struct {
	writer messageWriter
	now    func() time.Time
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		now: time.Now,
	}
}

func (p *OrderEventProducer) PublishOrderPlaced(ctx context.Context, e service.OrderPlacedEvent) error {
	return p.publish(ctx, EventOrderPlaced, e.OrderID, e)
}

func (p *OrderEventProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.publish(ctx, EventOrderStatusChanged, e.OrderID, e)
}

func (p *OrderEventProducer) publish(ctx context.Context, typ string, orderID int64, payload any) error {
	msg, err := buildMessage(typ, orderID, payload, p.now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.writer.WriteMessages(ctx, msg)
}

func buildMessage(typ string, orderID int64, payload any, at time.Time) (kafka.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, err
	}
	value, err := json.Marshal(Envelope{Type: typ, OccurredAt: at.UTC(), Data: data})
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(orderID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(typ)},
		},
	}, nil
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
