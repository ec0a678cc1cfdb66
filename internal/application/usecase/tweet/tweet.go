package tweet

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/tweet"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type UseCase struct {
	tweetRepo tweet.Repository
	userRepo  user.Repository
	logger    logger.Logger
}

func NewUseCase(tweetRepo tweet.Repository, userRepo user.Repository, log logger.Logger) *UseCase {
	return &UseCase{tweetRepo: tweetRepo, userRepo: userRepo, logger: log}
}

type CreateInput struct {
	OwnerID uuid.UUID
	Content string
}

func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*tweet.Tweet, error) {
	now := time.Now().UTC()
	t := &tweet.Tweet{
		ID:        uuid.New(),
		Content:   input.Content,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.tweetRepo.Save(ctx, t); err != nil {
		return nil, apperror.NewInternal("failed to save tweet", err)
	}
	return t, nil
}

type ListByUserInput struct {
	RawUserID string
	RawPage   string
	RawLimit  string
}

func (uc *UseCase) ListByUser(ctx context.Context, input ListByUserInput) (*query.Page[tweet.Tweet], error) {
	ownerID, err := uuid.Parse(input.RawUserID)
	if err != nil {
		return nil, apperror.NewInvalidInput("invalid user id", err)
	}

	if _, err := uc.userRepo.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.RawUserID)
		}
		return nil, apperror.NewInternal("failed to look up user", err)
	}

	req := query.Normalize(input.RawPage, input.RawLimit, "", "")

	tweets, total, err := uc.tweetRepo.ListByOwner(ctx, ownerID, req)
	if err != nil {
		return nil, apperror.NewInternal("failed to list tweets", err)
	}

	page := query.NewPage(tweets, req, total)
	return &page, nil
}

type UpdateInput struct {
	TweetID uuid.UUID
	UserID  uuid.UUID
	Content string
}

func (uc *UseCase) Update(ctx context.Context, input UpdateInput) (*tweet.Tweet, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperror.NewInvalidInput("tweet content is required", nil)
	}

	existing, err := uc.tweetRepo.FindByID(ctx, input.TweetID)
	if err != nil {
		if errors.Is(err, tweet.ErrTweetNotFound) {
			return nil, apperror.NewNotFound("tweet", input.TweetID.String())
		}
		return nil, apperror.NewInternal("failed to look up tweet", err)
	}
	if existing.OwnerID != input.UserID {
		return nil, apperror.NewPermissionDenied("you can only edit your own tweets")
	}

	updated, err := uc.tweetRepo.UpdateContent(ctx, input.TweetID, content)
	if err != nil {
		return nil, apperror.NewInternal("failed to update tweet", err)
	}
	return updated, nil
}

type DeleteInput struct {
	TweetID uuid.UUID
	UserID  uuid.UUID
}

func (uc *UseCase) Delete(ctx context.Context, input DeleteInput) error {
	existing, err := uc.tweetRepo.FindByID(ctx, input.TweetID)
	if err != nil {
		if errors.Is(err, tweet.ErrTweetNotFound) {
			return apperror.NewNotFound("tweet", input.TweetID.String())
		}
		return apperror.NewInternal("failed to look up tweet", err)
	}
	if existing.OwnerID != input.UserID {
		return apperror.NewPermissionDenied("you can only delete your own tweets")
	}

	if err := uc.tweetRepo.Delete(ctx, input.TweetID); err != nil {
		return apperror.NewInternal("failed to delete tweet", err)
	}
	return nil
}
