package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/pkg/apperror"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type ChannelProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewChannelProfileUseCase(repo user.Repository, log logger.Logger) *ChannelProfileUseCase {
	return &ChannelProfileUseCase{userRepo: repo, logger: log}
}

type ChannelProfileInput struct {
	Username string
	// ViewerID is uuid.Nil for anonymous visitors.
	ViewerID uuid.UUID
}

type ChannelProfileOutput struct {
	Profile *user.ChannelProfile
}

func (uc *ChannelProfileUseCase) Execute(ctx context.Context, input ChannelProfileInput) (*ChannelProfileOutput, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" {
		return nil, apperror.NewInvalidInput("username is required", nil)
	}

	profile, err := uc.userRepo.ChannelProfile(ctx, username, input.ViewerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("channel", username)
		}
		return nil, apperror.NewInternal("failed to load channel profile", err)
	}

	return &ChannelProfileOutput{Profile: profile}, nil
}
