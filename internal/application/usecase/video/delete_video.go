package video

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/viewtube/adapters/event"
	"github.com/khoahotran/viewtube/adapters/media_storage"
	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type DeleteVideoUseCase struct {
	videoRepo   video.Repository
	kafkaClient event.Publisher
	logger      logger.Logger
}

func NewDeleteVideoUseCase(repo video.Repository, k event.Publisher, log logger.Logger) *DeleteVideoUseCase {
	return &DeleteVideoUseCase{videoRepo: repo, kafkaClient: k, logger: log}
}

type DeleteVideoInput struct {
	VideoID uuid.UUID
	OwnerID uuid.UUID
}

func (uc *DeleteVideoUseCase) Execute(ctx context.Context, input DeleteVideoInput) error {

	existing, err := uc.videoRepo.FindByID(ctx, input.VideoID)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return apperror.NewNotFound("video", input.VideoID.String())
		}
		return apperror.NewInternal("failed to load video", err)
	}
	if existing.OwnerID != input.OwnerID {
		return apperror.NewPermissionDenied("you are not authorized to delete this video")
	}

	if err := uc.videoRepo.Delete(ctx, input.VideoID); err != nil {
		return apperror.NewInternal("failed to delete video", err)
	}

	// media cleanup is the worker's job; only the record is deleted here
	assets := []struct {
		url          string
		resourceType string
	}{
		{existing.VideoFile, service.ResourceTypeVideo},
		{existing.Thumbnail, service.ResourceTypeImage},
	}
	for _, asset := range assets {
		publicID := media_storage.PublicIDFromURL(asset.url)
		if publicID == "" {
			continue
		}
		payload := event.MediaEventPayload{
			EventType:    event.MediaEventTypeDeleted,
			VideoID:      existing.ID,
			PublicID:     publicID,
			ResourceType: asset.resourceType,
		}
		go func(p event.MediaEventPayload) {
			if err := uc.kafkaClient.PublishMediaEvent(context.Background(), p); err != nil {
				uc.logger.Error("Failed to publish media cleanup event", err, zap.String("video_id", p.VideoID.String()))
			}
		}(payload)
	}

	return nil
}
