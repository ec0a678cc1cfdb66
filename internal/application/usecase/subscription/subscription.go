package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/subscription"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type UseCase struct {
	subRepo  subscription.Repository
	userRepo user.Repository
	logger   logger.Logger
}

func NewUseCase(subRepo subscription.Repository, userRepo user.Repository, log logger.Logger) *UseCase {
	return &UseCase{subRepo: subRepo, userRepo: userRepo, logger: log}
}

type ToggleInput struct {
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
}

type ToggleOutput struct {
	Subscribed bool `json:"subscribed"`
}

func (uc *UseCase) Toggle(ctx context.Context, input ToggleInput) (*ToggleOutput, error) {
	if input.SubscriberID == input.ChannelID {
		return nil, apperror.NewInvalidInput(subscription.ErrSelfSubscription.Error(), subscription.ErrSelfSubscription)
	}

	if _, err := uc.userRepo.FindByID(ctx, input.ChannelID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("channel", input.ChannelID.String())
		}
		return nil, apperror.NewInternal("failed to look up channel", err)
	}

	existing, err := uc.subRepo.Find(ctx, input.SubscriberID, input.ChannelID)
	switch {
	case err == nil:
		if err := uc.subRepo.Delete(ctx, existing.ID); err != nil {
			return nil, apperror.NewInternal("failed to unsubscribe", err)
		}
		return &ToggleOutput{Subscribed: false}, nil
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		s := &subscription.Subscription{
			ID:           uuid.New(),
			SubscriberID: input.SubscriberID,
			ChannelID:    input.ChannelID,
			CreatedAt:    time.Now().UTC(),
		}
		if err := uc.subRepo.Save(ctx, s); err != nil {
			return nil, apperror.NewInternal("failed to subscribe", err)
		}
		return &ToggleOutput{Subscribed: true}, nil
	default:
		return nil, apperror.NewInternal("failed to look up subscription", err)
	}
}

type ListInput struct {
	RawUserID string
	RawPage   string
	RawLimit  string
}

// ListSubscribers returns the users subscribed to the given channel.
func (uc *UseCase) ListSubscribers(ctx context.Context, input ListInput) (*query.Page[subscription.Entry], error) {
	channelID, err := uc.resolveUser(ctx, input.RawUserID)
	if err != nil {
		return nil, err
	}

	req := query.Normalize(input.RawPage, input.RawLimit, "", "")
	entries, total, err := uc.subRepo.ListSubscribers(ctx, channelID, req)
	if err != nil {
		return nil, apperror.NewInternal("failed to list subscribers", err)
	}

	page := query.NewPage(entries, req, total)
	return &page, nil
}

// ListSubscribedChannels returns the channels the given user subscribes to.
func (uc *UseCase) ListSubscribedChannels(ctx context.Context, input ListInput) (*query.Page[subscription.Entry], error) {
	subscriberID, err := uc.resolveUser(ctx, input.RawUserID)
	if err != nil {
		return nil, err
	}

	req := query.Normalize(input.RawPage, input.RawLimit, "", "")
	entries, total, err := uc.subRepo.ListSubscribedChannels(ctx, subscriberID, req)
	if err != nil {
		return nil, apperror.NewInternal("failed to list subscribed channels", err)
	}

	page := query.NewPage(entries, req, total)
	return &page, nil
}

func (uc *UseCase) resolveUser(ctx context.Context, rawID string) (uuid.UUID, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, apperror.NewInvalidInput("invalid user id", err)
	}
	if _, err := uc.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return uuid.Nil, apperror.NewNotFound("user", rawID)
		}
		return uuid.Nil, apperror.NewInternal("failed to look up user", err)
	}
	return id, nil
}
