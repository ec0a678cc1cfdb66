package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/user"
)

type Subscription struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	ChannelID    uuid.UUID `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Entry is one row of a subscriber or subscribed-channel listing: the
// joined user's public fields plus when the subscription was made.
type Entry struct {
	User         user.Public `json:"user"`
	SubscribedAt time.Time   `json:"subscribed_at"`
}

var (
	ErrSelfSubscription     = errors.New("cannot subscribe to yourself")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type Repository interface {
	Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*Subscription, error)
	Save(ctx context.Context, s *Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListSubscribers(ctx context.Context, channelID uuid.UUID, req query.PageRequest) ([]Entry, int, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req query.PageRequest) ([]Entry, int, error)
}
