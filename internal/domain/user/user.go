package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CoverImage   *string   `json:"cover_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public is the projection of a user that is safe to embed in any response.
// Every joined read path must go through this shape so password hashes and
// token state never leak into list output.
type Public struct {
	ID       uuid.UUID `json:"id"`
	Fullname string    `json:"fullname"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
}

func (u *User) ToPublic() Public {
	return Public{ID: u.ID, Fullname: u.Fullname, Username: u.Username, Avatar: u.Avatar}
}

// ChannelProfile is a user viewed as a channel, with subscription stats
// relative to the viewer.
type ChannelProfile struct {
	ID                uuid.UUID `json:"id"`
	Fullname          string    `json:"fullname"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Avatar            string    `json:"avatar"`
	CoverImage        *string   `json:"cover_image"`
	SubscribersCount  int       `json:"subscribers_count"`
	SubscribedToCount int       `json:"subscribed_to_count"`
	IsSubscribed      bool      `json:"is_subscribed"`
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidUsername = errors.New("username only includes lowercase letters, digits and -")
	usernameRegex      = regexp.MustCompile(`^[a-z0-9-]{3,30}$`)
)

func (u *User) Validate() error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	if !usernameRegex.MatchString(u.Username) {
		return ErrInvalidUsername
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, fullname, email string) (*User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*User, error)
	UpdateCoverImage(ctx context.Context, id uuid.UUID, coverURL string) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// ChannelProfile resolves a channel by username with subscriber counts
	// and the viewer's subscription state. viewerID may be uuid.Nil for
	// anonymous viewers.
	ChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*ChannelProfile, error)
}
