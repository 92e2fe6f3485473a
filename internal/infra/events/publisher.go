package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// KafkaPublisher публикует события записи в топик Kafka
type KafkaPublisher struct {
	writer  MessageWriter
	topic   string
	metrics Metrics
	log     Logger
}

// NewKafkaWriter создает writer с хэш-балансировкой по ключу
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.Hash{},
	})
}

func NewKafkaPublisher(writer MessageWriter, topic string, metrics Metrics, log Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer:  writer,
		topic:   topic,
		metrics: metrics,
		log:     log,
	}
}

// PublishAppointmentBooked отправляет событие; ключ сообщения = id записи
func (p *KafkaPublisher) PublishAppointmentBooked(ctx context.Context, event AppointmentBooked) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AppointmentID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "event_type", Value: []byte(EventTypeAppointmentBooked)},
		},
	}
	msg.Headers = injectTraceHeaders(ctx, msg.Headers)

	err = p.writer.WriteMessages(ctx, msg)
	if p.metrics != nil {
		p.metrics.ObserveEventPublished(EventTypeAppointmentBooked, err)
	}
	if err != nil {
		return fmt.Errorf("%w: topic %s: %v", ErrPublish, p.topic, err)
	}

	p.log.Info("Event %s published for appointment_id=%s", EventTypeAppointmentBooked, event.AppointmentID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// DisabledPublisher используется, когда брокеры не заданы
type DisabledPublisher struct{}

func (DisabledPublisher) PublishAppointmentBooked(ctx context.Context, event AppointmentBooked) error {
	return nil
}

func (DisabledPublisher) Close() error {
	return nil
}

// injectTraceHeaders добавляет заголовки W3C trace context
func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.headers
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
