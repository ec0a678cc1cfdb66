package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type postgresVideoRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresVideoRepo(db *pgxpool.Pool, log logger.Logger) video.Repository {
	return &postgresVideoRepo{db: db, logger: log}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresVideoRepo) Save(ctx context.Context, v *video.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, video_file, thumbnail, title, description, views, duration, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		v.ID, v.OwnerID, v.VideoFile, v.Thumbnail, v.Title, v.Description,
		v.Views, v.Duration, v.IsPublished, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}
	return nil
}

const enrichedVideoColumns = `
	v.id, v.video_file, v.thumbnail, v.title, v.description,
	v.views, v.duration, v.is_published, v.owner_id, v.created_at, v.updated_at,
	u.id, u.fullname, u.username, u.avatar`

func scanEnrichedVideo(row pgx.Row) (*video.Video, error) {
	v := &video.Video{}
	owner := user.Public{}
	var score float32
	err := row.Scan(
		&v.ID,
		&v.VideoFile,
		&v.Thumbnail,
		&v.Title,
		&v.Description,
		&v.Views,
		&v.Duration,
		&v.IsPublished,
		&v.OwnerID,
		&v.CreatedAt,
		&v.UpdatedAt,
		&owner.ID,
		&owner.Fullname,
		&owner.Username,
		&owner.Avatar,
		&score,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, video.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to scan video row: %w", err)
	}
	v.Owner = &owner
	return v, nil
}

func (r *postgresVideoRepo) FindByID(ctx context.Context, id uuid.UUID) (*video.Video, error) {
	query := `
		SELECT ` + enrichedVideoColumns + `, 0::real AS score
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1
	`
	return scanEnrichedVideo(r.db.QueryRow(ctx, query, id))
}

func (r *postgresVideoRepo) Update(ctx context.Context, id uuid.UUID, fields video.UpdateFields) (*video.Video, error) {
	builder := psql.Update("videos").Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	if fields.Title != nil {
		builder = builder.Set("title", *fields.Title)
	}
	if fields.Description != nil {
		builder = builder.Set("description", *fields.Description)
	}
	if fields.Thumbnail != nil {
		builder = builder.Set("thumbnail", *fields.Thumbnail)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build video update: %w", err)
	}
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, video.ErrVideoNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *postgresVideoRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE videos SET is_published = $2, updated_at = NOW() WHERE id = $1`, id, published)
	if err != nil {
		return fmt.Errorf("failed to toggle publish state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return video.ErrVideoNotFound
	}
	return nil
}

func (r *postgresVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return video.ErrVideoNotFound
	}
	return nil
}

// predicate translates the validated filter into the WHERE conjunction used
// by both the count and the page query, so totalDocs always agrees with the
// returned items.
func predicate(filter video.Filter) (sq.And, string) {
	pred := sq.And{}

	if filter.ViewerID != uuid.Nil {
		pred = append(pred, sq.Or{
			sq.Eq{"v.is_published": true},
			sq.Eq{"v.owner_id": filter.ViewerID},
		})
	} else {
		pred = append(pred, sq.Eq{"v.is_published": true})
	}

	if filter.OwnerID != nil {
		pred = append(pred, sq.Eq{"v.owner_id": *filter.OwnerID})
	}

	text := strings.TrimSpace(filter.TextQuery)
	if text != "" {
		pred = append(pred, sq.Expr("v.ts @@ plainto_tsquery('simple', ?)", text))
	}
	return pred, text
}

func (r *postgresVideoRepo) List(ctx context.Context, filter video.Filter, req query.PageRequest) ([]video.Video, int, error) {
	pred, text := predicate(filter)

	countSql, countArgs, err := psql.Select("COUNT(*)").From("videos v").Where(pred).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build video count query: %w", err)
	}
	var totalDocs int
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalDocs); err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	builder := psql.Select(enrichedVideoColumns).
		From("videos v").
		Join("users u ON u.id = v.owner_id").
		Where(pred)

	orderBy := req.OrderBy("v.")
	if text != "" {
		builder = builder.Column(sq.Expr("ts_rank_cd(v.ts, plainto_tsquery('simple', ?)) AS score", text))
		orderBy = append([]string{"score DESC"}, orderBy...)
	} else {
		builder = builder.Column("0::real AS score")
	}

	builder = builder.
		OrderBy(orderBy...).
		Limit(uint64(req.Limit)).
		Offset(uint64(req.Offset()))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build video list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := make([]video.Video, 0)
	for rows.Next() {
		v, err := scanEnrichedVideo(rows)
		if err != nil {
			return nil, 0, err
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating video rows: %w", err)
	}
	return videos, totalDocs, nil
}

func (r *postgresVideoRepo) IncrementViews(ctx context.Context, id uuid.UUID, delta int64) error {
	_, err := r.db.Exec(ctx, `UPDATE videos SET views = views + $2 WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}
