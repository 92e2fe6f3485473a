package events

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageWriter отправка сообщений в Kafka (*kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Metrics interface {
	ObserveEventPublished(eventType string, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
