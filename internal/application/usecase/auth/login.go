package auth

import (
	"context"
	"errors"

	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/auth"
	"github.com/khoahotran/viewtube/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type LoginUseCase struct {
	userRepo   user.Repository
	jwtSvc     *auth.JWTService
	tokenStore service.TokenStore
	logger     logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, ts service.TokenStore, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo:   repo,
		jwtSvc:     jwtSvc,
		tokenStore: ts,
		logger:     log,
	}
}

type LoginInput struct {
	Email    string
	Username string
	Password string
}

type LoginOutput struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	if (input.Email == "" && input.Username == "") || input.Password == "" {
		return nil, apperror.NewInvalidInput("email or username and password are required", nil)
	}

	u, err := uc.userRepo.FindByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.Email+input.Username)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to look up user", err)
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		err := apperror.NewUnauthorized("incorrect password", nil)
		span.RecordError(err)
		return nil, err
	}

	access, refresh, err := uc.jwtSvc.GenerateTokenPair(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token pair", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate tokens", err)
		span.RecordError(err)
		return nil, err
	}

	if err := uc.tokenStore.StoreRefreshToken(ctx, u.ID, refresh, uc.jwtSvc.RefreshLifespan()); err != nil {
		uc.logger.Error("Failed to store refresh token", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to store refresh token", err)
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{User: u, AccessToken: access, RefreshToken: refresh}, nil
}
