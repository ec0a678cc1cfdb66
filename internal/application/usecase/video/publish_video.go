package video

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type PublishVideoUseCase struct {
	videoRepo video.Repository
	uploader  service.Uploader
	logger    logger.Logger
}

func NewPublishVideoUseCase(repo video.Repository, up service.Uploader, log logger.Logger) *PublishVideoUseCase {
	return &PublishVideoUseCase{videoRepo: repo, uploader: up, logger: log}
}

type PublishVideoInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Duration    float64
	VideoFile   io.Reader
	Thumbnail   io.Reader
}

type PublishVideoOutput struct {
	Video *video.Video
}

func (uc *PublishVideoUseCase) Execute(ctx context.Context, input PublishVideoInput) (*PublishVideoOutput, error) {

	if input.Title == "" || input.Description == "" {
		return nil, apperror.NewInvalidInput("title and description are required", nil)
	}
	if input.VideoFile == nil || input.Thumbnail == nil {
		return nil, apperror.NewInvalidInput("video file and thumbnail are required", nil)
	}
	if input.Duration <= 0 {
		return nil, apperror.NewInvalidInput("duration must be a positive number of seconds", nil)
	}

	videoID := uuid.New()
	folder := fmt.Sprintf("users/%s/videos", input.OwnerID.String())

	uploadedVideo, err := uc.uploader.Upload(ctx, input.VideoFile, folder, videoID.String(), service.ResourceTypeVideo)
	if err != nil {
		return nil, apperror.NewInternal("failed to upload video file", err)
	}

	uploadedThumb, err := uc.uploader.Upload(ctx, input.Thumbnail, folder, videoID.String()+"_thumb", service.ResourceTypeImage)
	if err != nil {
		go uc.uploader.Delete(context.Background(), uploadedVideo.PublicID, service.ResourceTypeVideo)
		return nil, apperror.NewInternal("failed to upload thumbnail", err)
	}

	now := time.Now().UTC()
	newVideo := &video.Video{
		ID:          videoID,
		VideoFile:   uploadedVideo.SecureURL,
		Thumbnail:   uploadedThumb.SecureURL,
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		IsPublished: true,
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := newVideo.Validate(); err != nil {
		go uc.uploader.Delete(context.Background(), uploadedVideo.PublicID, service.ResourceTypeVideo)
		go uc.uploader.Delete(context.Background(), uploadedThumb.PublicID, service.ResourceTypeImage)
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.videoRepo.Save(ctx, newVideo); err != nil {
		// roll back the uploads so the media host holds no orphans
		go uc.uploader.Delete(context.Background(), uploadedVideo.PublicID, service.ResourceTypeVideo)
		go uc.uploader.Delete(context.Background(), uploadedThumb.PublicID, service.ResourceTypeImage)
		return nil, apperror.NewInternal("failed to create video record; uploads rolled back", err)
	}

	uc.logger.Info("video published", zap.String("video_id", videoID.String()), zap.String("owner_id", input.OwnerID.String()))
	return &PublishVideoOutput{Video: newVideo}, nil
}
