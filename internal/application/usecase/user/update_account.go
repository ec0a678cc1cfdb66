package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type UpdateAccountUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewUpdateAccountUseCase(repo user.Repository, log logger.Logger) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{userRepo: repo, logger: log}
}

type UpdateAccountInput struct {
	UserID   uuid.UUID
	Fullname string
	Email    string
}

type UpdateAccountOutput struct {
	User *user.User
}

func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {

	if input.Fullname == "" || input.Email == "" {
		return nil, apperror.NewInvalidInput("fullname and email are required", nil)
	}

	u, err := uc.userRepo.UpdateDetails(ctx, input.UserID, input.Fullname, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.UserID.String())
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.NewInternal("failed to update account details", err)
	}
	return &UpdateAccountOutput{User: u}, nil
}
