package auth

import (
	"context"

	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/auth"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type RefreshTokenUseCase struct {
	jwtSvc     *auth.JWTService
	tokenStore service.TokenStore
	logger     logger.Logger
}

func NewRefreshTokenUseCase(jwtSvc *auth.JWTService, ts service.TokenStore, log logger.Logger) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtSvc: jwtSvc, tokenStore: ts, logger: log}
}

type RefreshTokenInput struct {
	RefreshToken string
}

type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {

	if input.RefreshToken == "" {
		return nil, apperror.NewInvalidInput("refresh token is required", nil)
	}

	claims, err := uc.jwtSvc.ValidateToken(input.RefreshToken, auth.TokenKindRefresh)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid refresh token", err)
	}

	stored, err := uc.tokenStore.GetRefreshToken(ctx, claims.UserID)
	if err != nil || stored != input.RefreshToken {
		// a mismatch means the token was rotated or revoked
		return nil, apperror.NewUnauthorized("refresh token is no longer valid", err)
	}

	access, refresh, err := uc.jwtSvc.GenerateTokenPair(claims.UserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to generate tokens", err)
	}

	if err := uc.tokenStore.StoreRefreshToken(ctx, claims.UserID, refresh, uc.jwtSvc.RefreshLifespan()); err != nil {
		return nil, apperror.NewInternal("failed to rotate refresh token", err)
	}

	return &RefreshTokenOutput{AccessToken: access, RefreshToken: refresh}, nil
}
