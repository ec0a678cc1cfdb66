package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/subscription"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type postgresSubscriptionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSubscriptionRepo(db *pgxpool.Pool, log logger.Logger) subscription.Repository {
	return &postgresSubscriptionRepo{db: db, logger: log}
}

func (r *postgresSubscriptionRepo) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*subscription.Subscription, error) {
	query := `
		SELECT id, subscriber_id, channel_id, created_at
		FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
	`
	s := &subscription.Subscription{}
	err := r.db.QueryRow(ctx, query, subscriberID, channelID).Scan(&s.ID, &s.SubscriberID, &s.ChannelID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return s, nil
}

func (r *postgresSubscriptionRepo) Save(ctx context.Context, s *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, s.ID, s.SubscriberID, s.ChannelID, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *postgresSubscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}
	return nil
}

// listEntries pages subscription rows joined against one side of the
// relation, newest first with an id tie-break.
func (r *postgresSubscriptionRepo) listEntries(ctx context.Context, where sq.Eq, joinColumn string, req query.PageRequest) ([]subscription.Entry, int, error) {
	countSql, countArgs, err := psql.Select("COUNT(*)").From("subscriptions s").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build subscription count query: %w", err)
	}
	var totalDocs int
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalDocs); err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	builder := psql.Select("u.id", "u.fullname", "u.username", "u.avatar", "s.created_at").
		From("subscriptions s").
		Join(fmt.Sprintf("users u ON u.id = s.%s", joinColumn)).
		Where(where).
		OrderBy("s.created_at DESC", "s.id ASC").
		Limit(uint64(req.Limit)).
		Offset(uint64(req.Offset()))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build subscription list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	entries := make([]subscription.Entry, 0)
	for rows.Next() {
		var e subscription.Entry
		var u user.Public
		if err := rows.Scan(&u.ID, &u.Fullname, &u.Username, &u.Avatar, &e.SubscribedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		e.User = u
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating subscription rows: %w", err)
	}
	return entries, totalDocs, nil
}

func (r *postgresSubscriptionRepo) ListSubscribers(ctx context.Context, channelID uuid.UUID, req query.PageRequest) ([]subscription.Entry, int, error) {
	return r.listEntries(ctx, sq.Eq{"s.channel_id": channelID}, "subscriber_id", req)
}

func (r *postgresSubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req query.PageRequest) ([]subscription.Entry, int, error) {
	return r.listEntries(ctx, sq.Eq{"s.subscriber_id": subscriberID}, "channel_id", req)
}
