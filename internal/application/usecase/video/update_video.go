package video

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/viewtube/adapters/event"
	"github.com/khoahotran/viewtube/adapters/media_storage"
	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type UpdateVideoUseCase struct {
	videoRepo   video.Repository
	uploader    service.Uploader
	kafkaClient event.Publisher
	logger      logger.Logger
}

func NewUpdateVideoUseCase(
	repo video.Repository,
	up service.Uploader,
	k event.Publisher,
	log logger.Logger,
) *UpdateVideoUseCase {
	return &UpdateVideoUseCase{videoRepo: repo, uploader: up, kafkaClient: k, logger: log}
}

type UpdateVideoInput struct {
	VideoID     uuid.UUID
	OwnerID     uuid.UUID
	Title       *string
	Description *string
	Thumbnail   io.Reader
}

type UpdateVideoOutput struct {
	Video *video.Video
}

func (uc *UpdateVideoUseCase) Execute(ctx context.Context, input UpdateVideoInput) (*UpdateVideoOutput, error) {

	existing, err := uc.videoRepo.FindByID(ctx, input.VideoID)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return nil, apperror.NewNotFound("video", input.VideoID.String())
		}
		return nil, apperror.NewInternal("failed to load video", err)
	}
	if existing.OwnerID != input.OwnerID {
		return nil, apperror.NewPermissionDenied("you are not authorized to update this video")
	}

	fields := video.UpdateFields{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len(title) > video.MaxTitleLength {
			return nil, apperror.NewInvalidInput(video.ErrInvalidTitle.Error(), nil)
		}
		fields.Title = &title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" || len(description) > video.MaxDescriptionLength {
			return nil, apperror.NewInvalidInput(video.ErrInvalidDescription.Error(), nil)
		}
		fields.Description = &description
	}

	var oldThumbID string
	if input.Thumbnail != nil {
		folder := "users/" + existing.OwnerID.String() + "/videos"
		uploadedThumb, err := uc.uploader.Upload(ctx, input.Thumbnail, folder, existing.ID.String()+"_thumb", service.ResourceTypeImage)
		if err != nil {
			return nil, apperror.NewInternal("failed to upload new thumbnail", err)
		}
		fields.Thumbnail = &uploadedThumb.SecureURL

		if id := media_storage.PublicIDFromURL(existing.Thumbnail); id != "" && id != uploadedThumb.PublicID {
			oldThumbID = id
		}
	}

	if fields.Empty() {
		return nil, apperror.NewInvalidInput("no valid fields provided for update", nil)
	}

	updated, err := uc.videoRepo.Update(ctx, input.VideoID, fields)
	if err != nil {
		return nil, apperror.NewInternal("failed to update video", err)
	}

	// The old thumbnail is only released once the record points at the new
	// one. Publishing before the update could destroy an asset a surviving
	// record still references.
	if oldThumbID != "" {
		go func() {
			payload := event.MediaEventPayload{
				EventType:    event.MediaEventTypeDeleted,
				VideoID:      existing.ID,
				PublicID:     oldThumbID,
				ResourceType: service.ResourceTypeImage,
			}
			if err := uc.kafkaClient.PublishMediaEvent(context.Background(), payload); err != nil {
				uc.logger.Error("Failed to publish media cleanup event", err, zap.String("video_id", existing.ID.String()))
			}
		}()
	}

	return &UpdateVideoOutput{Video: updated}, nil
}
