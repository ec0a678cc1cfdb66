package tweet

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/user"
)

type Tweet struct {
	ID        uuid.UUID    `json:"id"`
	Content   string       `json:"content"`
	OwnerID   uuid.UUID    `json:"-"`
	Owner     *user.Public `json:"owner,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

var (
	ErrTweetNotFound  = errors.New("tweet not found")
	ErrContentMissing = errors.New("tweet content is required")
)

func (t *Tweet) Validate() error {
	t.Content = strings.TrimSpace(t.Content)
	if t.Content == "" {
		return ErrContentMissing
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, t *Tweet) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tweet, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, req query.PageRequest) ([]Tweet, int, error)
}
