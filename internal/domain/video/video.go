package video

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/user"
)

const (
	MaxTitleLength       = 160
	MaxDescriptionLength = 7000
)

type Video struct {
	ID          uuid.UUID    `json:"id"`
	VideoFile   string       `json:"video_file"`
	Thumbnail   string       `json:"thumbnail"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Views       int64        `json:"views"`
	Duration    float64      `json:"duration"`
	IsPublished bool         `json:"is_published"`
	OwnerID     uuid.UUID    `json:"-"`
	Owner       *user.Public `json:"owner,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

var (
	ErrVideoNotFound      = errors.New("video not found")
	ErrInvalidTitle       = errors.New("title is required and must be at most 160 characters")
	ErrInvalidDescription = errors.New("description is required and must be at most 7000 characters")
	ErrInvalidDuration    = errors.New("duration must be a non-negative number of seconds")
)

func (v *Video) Validate() error {
	v.Title = strings.TrimSpace(v.Title)
	v.Description = strings.TrimSpace(v.Description)
	if v.Title == "" || len(v.Title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	if v.Description == "" || len(v.Description) > MaxDescriptionLength {
		return ErrInvalidDescription
	}
	if v.Duration < 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Filter is the validated predicate for video list queries. TextQuery is
// already trimmed; empty means no text stage. ViewerID widens the
// published-only restriction to include the viewer's own unpublished
// records, and is uuid.Nil for anonymous requests.
type Filter struct {
	OwnerID   *uuid.UUID
	TextQuery string
	ViewerID  uuid.UUID
}

// UpdateFields carries a partial update; nil means leave unchanged.
type UpdateFields struct {
	Title       *string
	Description *string
	Thumbnail   *string
}

func (f UpdateFields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Thumbnail == nil
}

// WatchEntry is one watch-history record enriched two levels deep: the
// watched video plus that video's owner.
type WatchEntry struct {
	Video     Video     `json:"video"`
	WatchedAt time.Time `json:"watched_at"`
}

type Repository interface {
	Save(ctx context.Context, v *Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*Video, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Video, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List executes the staged query: filter predicate, optional text
	// ranking, owner enrichment, normalized sort with id tie-break and
	// offset/limit, returning the page's items plus the total count of the
	// predicate alone.
	List(ctx context.Context, filter Filter, req query.PageRequest) ([]Video, int, error)
	IncrementViews(ctx context.Context, id uuid.UUID, delta int64) error
}

type WatchHistoryRepository interface {
	Record(ctx context.Context, userID, videoID uuid.UUID, watchedAt time.Time) error
	ListByUser(ctx context.Context, userID uuid.UUID, req query.PageRequest) ([]WatchEntry, int, error)
}
