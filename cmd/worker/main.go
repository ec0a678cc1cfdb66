package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/viewtube/adapters/event"
	"github.com/khoahotran/viewtube/adapters/media_storage"
	"github.com/khoahotran/viewtube/adapters/persistence"
	videoUC "github.com/khoahotran/viewtube/internal/application/usecase/video"
	"github.com/khoahotran/viewtube/internal/config"
	"github.com/khoahotran/viewtube/pkg/logger"
)

func main() {
	fmt.Println("Starting ViewTube Worker...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		appLogger.Fatal("cannot init uploader", err)
	}

	videoRepo := persistence.NewPostgresVideoRepo(dbPool, appLogger)

	processViewEventUC := videoUC.NewProcessViewEventUseCase(videoRepo, appLogger)
	processMediaEventUC := videoUC.NewProcessMediaEventUseCase(uploader, appLogger)

	viewConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicVideoViews,
		GroupID:  "view-counter-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer viewConsumer.Close()

	mediaConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicMediaEvents,
		GroupID:  "media-cleanup-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer mediaConsumer.Close()

	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		consumeViewEvents(ctx, viewConsumer, processViewEventUC)
	}()
	go func() {
		defer wg.Done()
		consumeMediaEvents(ctx, mediaConsumer, processMediaEventUC)
	}()

	log.Printf("Worker listening on topics '%s' and '%s'...", event.TopicVideoViews, event.TopicMediaEvents)
	wg.Wait()
}

func consumeViewEvents(ctx context.Context, consumer *kafka.Reader, uc *videoUC.ProcessViewEventUseCase) {
	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.ViewEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal view event: %v. Skipping.", err)
			commitMessage(consumer, msg)
			continue
		}

		if err := uc.Execute(ctx, payload); err != nil {
			log.Printf("ERROR: Failed to count view for video %s: %v", payload.VideoID, err)
			continue
		}

		commitMessage(consumer, msg)
	}
}

func consumeMediaEvents(ctx context.Context, consumer *kafka.Reader, uc *videoUC.ProcessMediaEventUseCase) {
	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.MediaEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal media event: %v. Skipping.", err)
			commitMessage(consumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for media %s", payload.EventType, payload.PublicID)

		if err := uc.Execute(ctx, payload); err != nil {
			log.Printf("ERROR: Failed to process media event for %s: %v", payload.PublicID, err)
			continue
		}

		commitMessage(consumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
