package services

import (
	"context"
	"encoding/json"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaUsagePublisher publishes usage events keyed by user id.
type KafkaUsagePublisher struct {
	writer KafkaWriter
}

// NewKafkaUsagePublisher creates a publisher. A nil writer disables publishing.
func NewKafkaUsagePublisher(writer KafkaWriter) *KafkaUsagePublisher {
	return &KafkaUsagePublisher{writer: writer}
}

// PublishUsage sends s to Kafka. Failures are logged and dropped.
func (p *KafkaUsagePublisher) PublishUsage(ctx context.Context, s *models.UsageSession) {
	if p == nil || p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "user_id", s.UserID, "tool", s.Tool)
		return
	}

	data, err := json.Marshal(s)
	if err != nil {
		logger.Log.Errorw("Failed to marshal usage event for Kafka", "user_id", s.UserID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(s.UserID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish usage event to Kafka", "user_id", s.UserID, "tool", s.Tool, "error", err)
	} else {
		logger.Log.Infow("Usage event published to Kafka", "user_id", s.UserID, "tool", s.Tool)
	}
}
