package video

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type TogglePublishUseCase struct {
	videoRepo video.Repository
	logger    logger.Logger
}

func NewTogglePublishUseCase(repo video.Repository, log logger.Logger) *TogglePublishUseCase {
	return &TogglePublishUseCase{videoRepo: repo, logger: log}
}

type TogglePublishInput struct {
	VideoID uuid.UUID
	OwnerID uuid.UUID
}

type TogglePublishOutput struct {
	VideoID     uuid.UUID `json:"video_id"`
	IsPublished bool      `json:"is_published"`
}

func (uc *TogglePublishUseCase) Execute(ctx context.Context, input TogglePublishInput) (*TogglePublishOutput, error) {

	existing, err := uc.videoRepo.FindByID(ctx, input.VideoID)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return nil, apperror.NewNotFound("video", input.VideoID.String())
		}
		return nil, apperror.NewInternal("failed to load video", err)
	}
	if existing.OwnerID != input.OwnerID {
		return nil, apperror.NewPermissionDenied("you are not authorized to change publish status of this video")
	}

	newState := !existing.IsPublished
	if err := uc.videoRepo.SetPublished(ctx, input.VideoID, newState); err != nil {
		return nil, apperror.NewInternal("failed to toggle publish status", err)
	}

	return &TogglePublishOutput{VideoID: input.VideoID, IsPublished: newState}, nil
}
