package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type LogoutUseCase struct {
	tokenStore service.TokenStore
	logger     logger.Logger
}

func NewLogoutUseCase(ts service.TokenStore, log logger.Logger) *LogoutUseCase {
	return &LogoutUseCase{tokenStore: ts, logger: log}
}

type LogoutInput struct {
	UserID uuid.UUID
}

func (uc *LogoutUseCase) Execute(ctx context.Context, input LogoutInput) error {
	if err := uc.tokenStore.DeleteRefreshToken(ctx, input.UserID); err != nil {
		return apperror.NewInternal("failed to revoke refresh token", err)
	}
	return nil
}
