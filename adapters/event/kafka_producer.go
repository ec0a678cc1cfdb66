package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/khoahotran/viewtube/internal/config"
	"github.com/segmentio/kafka-go"
)

const (
	TopicVideoViews  = "video.views"
	TopicMediaEvents = "media.events"
)

const (
	MediaEventTypeDeleted = "media.deleted"
)

// ViewEventPayload is published when an authenticated or anonymous viewer
// fetches a video; the worker folds these into the views counter.
type ViewEventPayload struct {
	VideoID  uuid.UUID `json:"video_id"`
	ViewerID uuid.UUID `json:"viewer_id,omitempty"`
}

// MediaEventPayload notifies the worker that orphaned media-host assets
// should be cleaned up (video deletion, replaced thumbnails).
type MediaEventPayload struct {
	EventType    string    `json:"event_type"`
	VideoID      uuid.UUID `json:"video_id"`
	PublicID     string    `json:"public_id"`
	ResourceType string    `json:"resource_type"`
}

// Publisher is what use cases depend on, so tests can stand in a fake
// instead of a live Kafka writer.
type Publisher interface {
	PublishViewEvent(ctx context.Context, payload ViewEventPayload) error
	PublishMediaEvent(ctx context.Context, payload MediaEventPayload) error
}

type KafkaProducerClient struct {
	ViewEventsWriter  *kafka.Writer
	MediaEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	viewWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicVideoViews,
		Balancer: &kafka.LeastBytes{},
	}

	mediaWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicMediaEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		ViewEventsWriter:  viewWriter,
		MediaEventsWriter: mediaWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishViewEvent(ctx context.Context, payload ViewEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal view event: %w", err)
	}
	return c.ViewEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.VideoID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishMediaEvent(ctx context.Context, payload MediaEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal media event: %w", err)
	}
	return c.MediaEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.VideoID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ViewEventsWriter != nil {
		c.ViewEventsWriter.Close()
	}
	if c.MediaEventsWriter != nil {
		c.MediaEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
