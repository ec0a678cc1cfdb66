package auth

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/auth"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type RegisterUseCase struct {
	userRepo user.Repository
	uploader service.Uploader
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, up service.Uploader, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{userRepo: repo, uploader: up, logger: log}
}

type RegisterInput struct {
	Fullname   string
	Email      string
	Username   string
	Password   string
	Avatar     io.Reader
	CoverImage io.Reader
}

type RegisterOutput struct {
	User *user.User
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {

	if input.Fullname == "" || input.Email == "" || input.Username == "" || input.Password == "" {
		return nil, apperror.NewInvalidInput("fullname, email, username and password are required", nil)
	}
	if input.Avatar == nil {
		return nil, apperror.NewInvalidInput("avatar image is required", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	// Validate before touching the media host so a rejected username never
	// leaves uploaded assets behind.
	userID := uuid.New()
	now := time.Now().UTC()
	newUser := &user.User{
		ID:           userID,
		Fullname:     input.Fullname,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := newUser.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	existing, err := uc.userRepo.FindByEmailOrUsername(ctx, newUser.Email, newUser.Username)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, apperror.NewInternal("failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperror.NewConflict("user", "email or username", input.Email)
	}

	avatarResult, err := uc.uploader.Upload(ctx, input.Avatar, "users/avatars", userID.String(), service.ResourceTypeImage)
	if err != nil {
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}
	newUser.Avatar = avatarResult.SecureURL

	var coverResult *service.UploadResult
	if input.CoverImage != nil {
		coverResult, err = uc.uploader.Upload(ctx, input.CoverImage, "users/covers", userID.String(), service.ResourceTypeImage)
		if err != nil {
			go uc.uploader.Delete(context.Background(), avatarResult.PublicID, service.ResourceTypeImage)
			return nil, apperror.NewInternal("failed to upload cover image", err)
		}
		newUser.CoverImage = &coverResult.SecureURL
	}

	if err := uc.userRepo.Save(ctx, newUser); err != nil {
		// uploads are orphaned once record creation fails, clean them up
		go uc.uploader.Delete(context.Background(), avatarResult.PublicID, service.ResourceTypeImage)
		if coverResult != nil {
			go uc.uploader.Delete(context.Background(), coverResult.PublicID, service.ResourceTypeImage)
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.NewInternal("failed to create user", err)
	}

	uc.logger.Info("user registered", zap.String("user_id", userID.String()), zap.String("username", newUser.Username))
	return &RegisterOutput{User: newUser}, nil
}
