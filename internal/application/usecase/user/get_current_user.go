package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/apperror"
)

type GetCurrentUserUseCase struct {
	userRepo user.Repository
}

func NewGetCurrentUserUseCase(repo user.Repository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: repo}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, apperror.NewInternal("failed to load user", err)
	}
	return u, nil
}
