package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type postgresWatchHistoryRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresWatchHistoryRepo(db *pgxpool.Pool, log logger.Logger) video.WatchHistoryRepository {
	return &postgresWatchHistoryRepo{db: db, logger: log}
}

func (r *postgresWatchHistoryRepo) Record(ctx context.Context, userID, videoID uuid.UUID, watchedAt time.Time) error {
	query := `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = EXCLUDED.watched_at
	`
	_, err := r.db.Exec(ctx, query, userID, videoID, watchedAt)
	if err != nil {
		return fmt.Errorf("failed to record watch history: %w", err)
	}
	return nil
}

// ListByUser is the double-hop enrichment: history rows resolve to video
// documents, and each video resolves to its owner's public fields.
func (r *postgresWatchHistoryRepo) ListByUser(ctx context.Context, userID uuid.UUID, req query.PageRequest) ([]video.WatchEntry, int, error) {
	var totalDocs int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM watch_history WHERE user_id = $1`, userID).Scan(&totalDocs); err != nil {
		return nil, 0, fmt.Errorf("failed to count watch history: %w", err)
	}

	query := `
		SELECT
			v.id, v.video_file, v.thumbnail, v.title, v.description,
			v.views, v.duration, v.is_published, v.owner_id, v.created_at, v.updated_at,
			u.id, u.fullname, u.username, u.avatar,
			h.watched_at
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC, v.id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, req.Limit, req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	entries := make([]video.WatchEntry, 0)
	for rows.Next() {
		var e video.WatchEntry
		owner := user.Public{}
		err := rows.Scan(
			&e.Video.ID,
			&e.Video.VideoFile,
			&e.Video.Thumbnail,
			&e.Video.Title,
			&e.Video.Description,
			&e.Video.Views,
			&e.Video.Duration,
			&e.Video.IsPublished,
			&e.Video.OwnerID,
			&e.Video.CreatedAt,
			&e.Video.UpdatedAt,
			&owner.ID,
			&owner.Fullname,
			&owner.Username,
			&owner.Avatar,
			&e.WatchedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan watch history row: %w", err)
		}
		e.Video.Owner = &owner
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating watch history rows: %w", err)
	}
	return entries, totalDocs, nil
}
