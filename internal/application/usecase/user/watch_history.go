package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type WatchHistoryUseCase struct {
	historyRepo video.WatchHistoryRepository
	logger      logger.Logger
}

func NewWatchHistoryUseCase(repo video.WatchHistoryRepository, log logger.Logger) *WatchHistoryUseCase {
	return &WatchHistoryUseCase{historyRepo: repo, logger: log}
}

type WatchHistoryInput struct {
	UserID   uuid.UUID
	RawPage  string
	RawLimit string
}

type WatchHistoryOutput struct {
	Page *query.Page[video.WatchEntry]
}

func (uc *WatchHistoryUseCase) Execute(ctx context.Context, input WatchHistoryInput) (*WatchHistoryOutput, error) {
	req := query.Normalize(input.RawPage, input.RawLimit, "", "")

	entries, total, err := uc.historyRepo.ListByUser(ctx, input.UserID, req)
	if err != nil {
		return nil, apperror.NewInternal("failed to list watch history", err)
	}

	page := query.NewPage(entries, req, total)
	return &WatchHistoryOutput{Page: &page}, nil
}
