package http

import (
	"time"

	"github.com/khoahotran/viewtube/internal/domain/user"
)

// UserDTO is the account owner's own view of their record. Joined read
// paths use user.Public instead; this shape additionally carries the email
// and cover image, which only the owner should see.
type UserDTO struct {
	ID         string    `json:"id"`
	Fullname   string    `json:"fullname"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Avatar     string    `json:"avatar"`
	CoverImage *string   `json:"cover_image"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:         u.ID.String(),
		Fullname:   u.Fullname,
		Email:      u.Email,
		Username:   u.Username,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type UpdateAccountRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type CreateTweetRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateTweetRequest struct {
	Content string `json:"content" binding:"required"`
}
