// Package kafka publishes outbound notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
)

// Notifier writes notifications as JSON messages keyed by source.
type Notifier struct {
	writer *kafka.Writer
}

var _ portssvc.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier publishing to the given brokers and topic.
func NewNotifier(brokers []string, topic string) *Notifier {
	return &Notifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Notify marshals the notification and writes it to the topic.
func (n *Notifier) Notify(ctx context.Context, notification domain.Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(notification.Source),
		Value: data,
	})
}

// Close releases the underlying writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}
