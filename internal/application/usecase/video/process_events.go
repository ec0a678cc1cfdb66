package video

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/viewtube/adapters/event"
	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/logger"
)

// ProcessViewEventUseCase folds view events from the worker into the views
// counter. Increments are applied one event at a time; the counter column
// absorbs concurrent updates.
type ProcessViewEventUseCase struct {
	videoRepo video.Repository
	logger    logger.Logger
}

func NewProcessViewEventUseCase(repo video.Repository, log logger.Logger) *ProcessViewEventUseCase {
	return &ProcessViewEventUseCase{videoRepo: repo, logger: log}
}

func (uc *ProcessViewEventUseCase) Execute(ctx context.Context, payload event.ViewEventPayload) error {
	return uc.videoRepo.IncrementViews(ctx, payload.VideoID, 1)
}

// ProcessMediaEventUseCase destroys media-host assets orphaned by deletes
// and thumbnail replacements.
type ProcessMediaEventUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewProcessMediaEventUseCase(up service.Uploader, log logger.Logger) *ProcessMediaEventUseCase {
	return &ProcessMediaEventUseCase{uploader: up, logger: log}
}

func (uc *ProcessMediaEventUseCase) Execute(ctx context.Context, payload event.MediaEventPayload) error {
	if payload.EventType != event.MediaEventTypeDeleted {
		uc.logger.Warn("ignoring unknown media event type", zap.String("event_type", payload.EventType))
		return nil
	}
	return uc.uploader.Delete(ctx, payload.PublicID, payload.ResourceType)
}
