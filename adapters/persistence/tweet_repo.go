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
	"github.com/khoahotran/viewtube/internal/domain/tweet"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type postgresTweetRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresTweetRepo(db *pgxpool.Pool, log logger.Logger) tweet.Repository {
	return &postgresTweetRepo{db: db, logger: log}
}

const enrichedTweetColumns = `
	t.id, t.content, t.owner_id, t.created_at, t.updated_at,
	u.id, u.fullname, u.username, u.avatar`

func scanEnrichedTweet(row pgx.Row) (*tweet.Tweet, error) {
	t := &tweet.Tweet{}
	owner := user.Public{}
	err := row.Scan(
		&t.ID,
		&t.Content,
		&t.OwnerID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&owner.ID,
		&owner.Fullname,
		&owner.Username,
		&owner.Avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tweet.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to scan tweet row: %w", err)
	}
	t.Owner = &owner
	return t, nil
}

func (r *postgresTweetRepo) Save(ctx context.Context, t *tweet.Tweet) error {
	query := `
		INSERT INTO tweets (id, content, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, t.ID, t.Content, t.OwnerID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save tweet: %w", err)
	}
	return nil
}

func (r *postgresTweetRepo) FindByID(ctx context.Context, id uuid.UUID) (*tweet.Tweet, error) {
	query := `
		SELECT ` + enrichedTweetColumns + `
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		WHERE t.id = $1
	`
	return scanEnrichedTweet(r.db.QueryRow(ctx, query, id))
}

func (r *postgresTweetRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*tweet.Tweet, error) {
	cmdTag, err := r.db.Exec(ctx, `UPDATE tweets SET content = $2, updated_at = NOW() WHERE id = $1`, id, content)
	if err != nil {
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, tweet.ErrTweetNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *postgresTweetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return tweet.ErrTweetNotFound
	}
	return nil
}

func (r *postgresTweetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, req query.PageRequest) ([]tweet.Tweet, int, error) {
	var totalDocs int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tweets WHERE owner_id = $1`, ownerID).Scan(&totalDocs); err != nil {
		return nil, 0, fmt.Errorf("failed to count tweets: %w", err)
	}

	builder := psql.Select(enrichedTweetColumns).
		From("tweets t").
		Join("users u ON u.id = t.owner_id").
		Where(sq.Eq{"t.owner_id": ownerID}).
		OrderBy("t.created_at DESC", "t.id ASC").
		Limit(uint64(req.Limit)).
		Offset(uint64(req.Offset()))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build tweet list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tweets: %w", err)
	}
	defer rows.Close()

	tweets := make([]tweet.Tweet, 0)
	for rows.Next() {
		t, err := scanEnrichedTweet(rows)
		if err != nil {
			return nil, 0, err
		}
		tweets = append(tweets, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating tweet rows: %w", err)
	}
	return tweets, totalDocs, nil
}
