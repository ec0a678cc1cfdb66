package video

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/viewtube/adapters/event"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type GetVideoUseCase struct {
	videoRepo   video.Repository
	historyRepo video.WatchHistoryRepository
	kafkaClient event.Publisher
	logger      logger.Logger
}

func NewGetVideoUseCase(
	vRepo video.Repository,
	hRepo video.WatchHistoryRepository,
	k event.Publisher,
	log logger.Logger,
) *GetVideoUseCase {
	return &GetVideoUseCase{videoRepo: vRepo, historyRepo: hRepo, kafkaClient: k, logger: log}
}

type GetVideoInput struct {
	VideoID  uuid.UUID
	ViewerID uuid.UUID
}

type GetVideoOutput struct {
	Video *video.Video
}

func (uc *GetVideoUseCase) Execute(ctx context.Context, input GetVideoInput) (*GetVideoOutput, error) {

	v, err := uc.videoRepo.FindByID(ctx, input.VideoID)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return nil, apperror.NewNotFound("video", input.VideoID.String())
		}
		return nil, apperror.NewInternal("failed to load video", err)
	}

	if !v.IsPublished && input.ViewerID != v.OwnerID {
		return nil, apperror.NewPermissionDenied("access denied to unpublished video")
	}

	// view counting and history recording must not delay the response
	go func() {
		payload := event.ViewEventPayload{VideoID: v.ID, ViewerID: input.ViewerID}
		if err := uc.kafkaClient.PublishViewEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish view event", err, zap.String("video_id", v.ID.String()))
		}
	}()
	if input.ViewerID != uuid.Nil {
		go func() {
			if err := uc.historyRepo.Record(context.Background(), input.ViewerID, v.ID, time.Now().UTC()); err != nil {
				uc.logger.Error("Failed to record watch history", err, zap.String("video_id", v.ID.String()))
			}
		}()
	}

	return &GetVideoOutput{Video: v}, nil
}
