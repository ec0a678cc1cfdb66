package video

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/viewtube/adapters/event"
	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
)

func TestDeleteVideo_OnlyOwnerMayDelete(t *testing.T) {
	repo := newFakeVideoRepo()
	v := seedVideo(repo, true)

	uc := NewDeleteVideoUseCase(repo, newFakePublisher(), nopLogger{})

	err := uc.Execute(context.Background(), DeleteVideoInput{VideoID: v.ID, OwnerID: uuid.New()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrPermission))

	// record must still exist
	_, err = repo.FindByID(context.Background(), v.ID)
	assert.NoError(t, err)
}

func TestDeleteVideo_PublishesCleanupEvents(t *testing.T) {
	repo := newFakeVideoRepo()
	publisher := newFakePublisher()
	v := &video.Video{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Title:       "to delete",
		VideoFile:   "https://res.cloudinary.com/demo/video/upload/v123/users/abc/videos/file.mp4",
		Thumbnail:   "https://res.cloudinary.com/demo/image/upload/v123/users/abc/videos/file_thumb.jpg",
		IsPublished: true,
	}
	repo.Save(context.Background(), v)

	uc := NewDeleteVideoUseCase(repo, publisher, nopLogger{})

	err := uc.Execute(context.Background(), DeleteVideoInput{VideoID: v.ID, OwnerID: v.OwnerID})
	require.NoError(t, err)

	_, err = repo.FindByID(context.Background(), v.ID)
	assert.ErrorIs(t, err, video.ErrVideoNotFound)

	types := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case payload := <-publisher.mediaEvents:
			assert.Equal(t, event.MediaEventTypeDeleted, payload.EventType)
			assert.Equal(t, v.ID, payload.VideoID)
			assert.NotEmpty(t, payload.PublicID)
			types[payload.ResourceType] = true
		case <-time.After(2 * time.Second):
			t.Fatal("expected cleanup events for video file and thumbnail")
		}
	}
	assert.True(t, types[service.ResourceTypeVideo])
	assert.True(t, types[service.ResourceTypeImage])
}

func TestTogglePublish_FlipsState(t *testing.T) {
	repo := newFakeVideoRepo()
	v := seedVideo(repo, true)

	uc := NewTogglePublishUseCase(repo, nopLogger{})

	output, err := uc.Execute(context.Background(), TogglePublishInput{VideoID: v.ID, OwnerID: v.OwnerID})
	require.NoError(t, err)
	assert.False(t, output.IsPublished)

	output, err = uc.Execute(context.Background(), TogglePublishInput{VideoID: v.ID, OwnerID: v.OwnerID})
	require.NoError(t, err)
	assert.True(t, output.IsPublished)
}

func TestTogglePublish_NotOwnerForbidden(t *testing.T) {
	repo := newFakeVideoRepo()
	v := seedVideo(repo, true)

	uc := NewTogglePublishUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), TogglePublishInput{VideoID: v.ID, OwnerID: uuid.New()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrPermission))
}
