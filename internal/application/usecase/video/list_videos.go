package video

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type ListVideosUseCase struct {
	videoRepo video.Repository
	userRepo  user.Repository
	logger    logger.Logger
}

func NewListVideosUseCase(vRepo video.Repository, uRepo user.Repository, log logger.Logger) *ListVideosUseCase {
	return &ListVideosUseCase{videoRepo: vRepo, userRepo: uRepo, logger: log}
}

// ListVideosInput carries the raw, untrusted query parameters; Execute
// normalizes them. ViewerID is uuid.Nil for anonymous requests.
type ListVideosInput struct {
	Page      string
	Limit     string
	SortBy    string
	SortType  string
	TextQuery string
	UserID    string
	ViewerID  uuid.UUID
}

type ListVideosOutput struct {
	Page query.Page[video.Video]
}

var tracer = otel.Tracer("video_usecase")

func (uc *ListVideosUseCase) Execute(ctx context.Context, input ListVideosInput) (*ListVideosOutput, error) {

	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	// This endpoint rejects oversized limits instead of clamping them, so
	// the raw value is checked before normalization.
	if input.Limit != "" {
		if rawLimit, err := strconv.Atoi(input.Limit); err == nil && rawLimit > query.MaxLimit {
			return nil, apperror.NewInvalidInput("limit cannot exceed 100", nil)
		}
	}

	req := query.Normalize(input.Page, input.Limit, input.SortBy, input.SortType)

	filter := video.Filter{
		TextQuery: strings.TrimSpace(input.TextQuery),
		ViewerID:  input.ViewerID,
	}

	if input.UserID != "" {
		ownerID, err := uuid.Parse(input.UserID)
		if err != nil {
			return nil, apperror.NewInvalidInput("invalid userId", err)
		}
		if _, err := uc.userRepo.FindByID(ctx, ownerID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return nil, apperror.NewNotFound("user", input.UserID)
			}
			return nil, apperror.NewInternal("failed to look up user", err)
		}
		filter.OwnerID = &ownerID
	}

	videos, totalDocs, err := uc.videoRepo.List(ctx, filter, req)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list videos", err)
	}

	span.SetAttributes(attribute.Int("total_docs", totalDocs))
	return &ListVideosOutput{Page: query.NewPage(videos, req, totalDocs)}, nil
}
