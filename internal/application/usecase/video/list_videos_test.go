package video

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/apperror"
)

func TestListVideos_RejectsOversizedLimit(t *testing.T) {
	uc := NewListVideosUseCase(newFakeVideoRepo(), newFakeUserRepo(), nopLogger{})

	_, err := uc.Execute(context.Background(), ListVideosInput{Limit: "101"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestListVideos_AcceptsLimitAtMax(t *testing.T) {
	repo := newFakeVideoRepo()
	uc := NewListVideosUseCase(repo, newFakeUserRepo(), nopLogger{})

	_, err := uc.Execute(context.Background(), ListVideosInput{Limit: "100"})

	require.NoError(t, err)
	require.NotNil(t, repo.listReq)
	assert.Equal(t, 100, repo.listReq.Limit)
}

func TestListVideos_NonNumericLimitFallsBackToDefault(t *testing.T) {
	repo := newFakeVideoRepo()
	uc := NewListVideosUseCase(repo, newFakeUserRepo(), nopLogger{})

	_, err := uc.Execute(context.Background(), ListVideosInput{Limit: "lots"})

	require.NoError(t, err)
	assert.Equal(t, query.DefaultLimit, repo.listReq.Limit)
}

func TestListVideos_InvalidUserIDRejected(t *testing.T) {
	uc := NewListVideosUseCase(newFakeVideoRepo(), newFakeUserRepo(), nopLogger{})

	_, err := uc.Execute(context.Background(), ListVideosInput{UserID: "not-a-uuid"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestListVideos_UnknownOwnerIsNotFound(t *testing.T) {
	uc := NewListVideosUseCase(newFakeVideoRepo(), newFakeUserRepo(), nopLogger{})

	_, err := uc.Execute(context.Background(), ListVideosInput{UserID: uuid.NewString()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestListVideos_OwnerFilterPassedThrough(t *testing.T) {
	owner := &user.User{ID: uuid.New(), Username: "creator"}
	repo := newFakeVideoRepo()

	var gotFilter video.Filter
	repo.listFn = func(filter video.Filter, _ query.PageRequest) ([]video.Video, int, error) {
		gotFilter = filter
		return []video.Video{}, 0, nil
	}

	uc := NewListVideosUseCase(repo, newFakeUserRepo(owner), nopLogger{})

	_, err := uc.Execute(context.Background(), ListVideosInput{
		UserID:    owner.ID.String(),
		TextQuery: "  gophers  ",
	})

	require.NoError(t, err)
	require.NotNil(t, gotFilter.OwnerID)
	assert.Equal(t, owner.ID, *gotFilter.OwnerID)
	assert.Equal(t, "gophers", gotFilter.TextQuery)
}

func TestListVideos_PageMetadata(t *testing.T) {
	repo := newFakeVideoRepo()
	repo.listFn = func(_ video.Filter, req query.PageRequest) ([]video.Video, int, error) {
		items := make([]video.Video, req.Limit)
		return items, 25, nil
	}

	uc := NewListVideosUseCase(repo, newFakeUserRepo(), nopLogger{})

	output, err := uc.Execute(context.Background(), ListVideosInput{Page: "2", Limit: "10"})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Page.Page)
	assert.Equal(t, 25, output.Page.TotalDocs)
	assert.Equal(t, 3, output.Page.TotalPages)
	assert.True(t, output.Page.HasPrevPage)
	assert.True(t, output.Page.HasNextPage)
}

func TestListVideos_EmptyResult(t *testing.T) {
	uc := NewListVideosUseCase(newFakeVideoRepo(), newFakeUserRepo(), nopLogger{})

	output, err := uc.Execute(context.Background(), ListVideosInput{})

	require.NoError(t, err)
	assert.Empty(t, output.Page.Items)
	assert.Equal(t, 1, output.Page.TotalPages)
	assert.False(t, output.Page.HasNextPage)
}
