package user

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/viewtube/adapters/media_storage"
	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type UpdateImagesUseCase struct {
	userRepo user.Repository
	uploader service.Uploader
	logger   logger.Logger
}

func NewUpdateImagesUseCase(repo user.Repository, up service.Uploader, log logger.Logger) *UpdateImagesUseCase {
	return &UpdateImagesUseCase{userRepo: repo, uploader: up, logger: log}
}

type UpdateImageInput struct {
	UserID uuid.UUID
	File   io.Reader
}

type UpdateImageOutput struct {
	User *user.User
}

func (uc *UpdateImagesUseCase) UpdateAvatar(ctx context.Context, input UpdateImageInput) (*UpdateImageOutput, error) {
	return uc.updateImage(ctx, input, "users/avatars", func(u *user.User) string { return u.Avatar }, uc.userRepo.UpdateAvatar)
}

func (uc *UpdateImagesUseCase) UpdateCoverImage(ctx context.Context, input UpdateImageInput) (*UpdateImageOutput, error) {
	return uc.updateImage(ctx, input, "users/covers", func(u *user.User) string {
		if u.CoverImage == nil {
			return ""
		}
		return *u.CoverImage
	}, uc.userRepo.UpdateCoverImage)
}

func (uc *UpdateImagesUseCase) updateImage(
	ctx context.Context,
	input UpdateImageInput,
	folder string,
	currentURL func(*user.User) string,
	apply func(context.Context, uuid.UUID, string) (*user.User, error),
) (*UpdateImageOutput, error) {

	if input.File == nil {
		return nil, apperror.NewInvalidInput("image file is required", nil)
	}

	existing, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to look up user", err)
	}

	uploaded, err := uc.uploader.Upload(ctx, input.File, folder, input.UserID.String(), service.ResourceTypeImage)
	if err != nil {
		return nil, apperror.NewInternal("failed to upload image", err)
	}

	updated, err := apply(ctx, input.UserID, uploaded.SecureURL)
	if err != nil {
		go uc.uploader.Delete(context.Background(), uploaded.PublicID, service.ResourceTypeImage)
		return nil, apperror.NewInternal("failed to update user image", err)
	}

	if oldID := media_storage.PublicIDFromURL(currentURL(existing)); oldID != "" && oldID != uploaded.PublicID {
		go func() {
			if err := uc.uploader.Delete(context.Background(), oldID, service.ResourceTypeImage); err != nil {
				uc.logger.Error("Failed to delete replaced image", err, zap.String("public_id", oldID))
			}
		}()
	}

	return &UpdateImageOutput{User: updated}, nil
}
