package video

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
)

func validPublishInput() PublishVideoInput {
	return PublishVideoInput{
		OwnerID:     uuid.New(),
		Title:       "my video",
		Description: "a description",
		Duration:    42.5,
		VideoFile:   strings.NewReader("video bytes"),
		Thumbnail:   strings.NewReader("thumb bytes"),
	}
}

func TestPublishVideo_RequiredFields(t *testing.T) {
	uc := NewPublishVideoUseCase(newFakeVideoRepo(), newFakeUploader(), nopLogger{})

	cases := []func(*PublishVideoInput){
		func(in *PublishVideoInput) { in.Title = "" },
		func(in *PublishVideoInput) { in.Description = "" },
		func(in *PublishVideoInput) { in.VideoFile = nil },
		func(in *PublishVideoInput) { in.Thumbnail = nil },
		func(in *PublishVideoInput) { in.Duration = 0 },
		func(in *PublishVideoInput) { in.Duration = -3 },
	}
	for _, mutate := range cases {
		input := validPublishInput()
		mutate(&input)

		_, err := uc.Execute(context.Background(), input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	}
}

func TestPublishVideo_Success(t *testing.T) {
	repo := newFakeVideoRepo()
	uc := NewPublishVideoUseCase(repo, newFakeUploader(), nopLogger{})

	input := validPublishInput()
	output, err := uc.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, output.Video.IsPublished)
	assert.Equal(t, input.OwnerID, output.Video.OwnerID)
	assert.NotEmpty(t, output.Video.VideoFile)
	assert.NotEmpty(t, output.Video.Thumbnail)
	assert.Equal(t, input.Duration, output.Video.Duration)

	saved, err := repo.FindByID(context.Background(), output.Video.ID)
	require.NoError(t, err)
	assert.Equal(t, input.Title, saved.Title)
}

func TestPublishVideo_OverlongTitleRollsBackUploads(t *testing.T) {
	uploader := newFakeUploader()
	uc := NewPublishVideoUseCase(newFakeVideoRepo(), uploader, nopLogger{})

	input := validPublishInput()
	input.Title = strings.Repeat("x", video.MaxTitleLength+1)

	_, err := uc.Execute(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	// both uploaded assets must be cleaned up
	for i := 0; i < 2; i++ {
		select {
		case <-uploader.deleted:
		case <-time.After(2 * time.Second):
			t.Fatal("expected uploaded assets to be rolled back")
		}
	}
}
