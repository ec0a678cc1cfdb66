package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/auth"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type ChangePasswordUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewChangePasswordUseCase(repo user.Repository, log logger.Logger) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userRepo: repo, logger: log}
}

type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, input ChangePasswordInput) error {

	if input.OldPassword == "" || input.NewPassword == "" {
		return apperror.NewInvalidInput("old and new password are required", nil)
	}

	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperror.NewNotFound("user", input.UserID.String())
		}
		return apperror.NewInternal("failed to look up user", err)
	}

	if !auth.CheckPasswordHash(input.OldPassword, u.PasswordHash) {
		return apperror.NewInvalidInput("old password is incorrect", nil)
	}

	hash, err := auth.HashPassword(input.NewPassword)
	if err != nil {
		return apperror.NewInternal("failed to hash password", err)
	}

	if err := uc.userRepo.UpdatePassword(ctx, input.UserID, hash); err != nil {
		return apperror.NewInternal("failed to update password", err)
	}
	return nil
}
