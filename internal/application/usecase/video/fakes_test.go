package video

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/viewtube/adapters/event"
	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...zap.Field)         {}
func (nopLogger) Warn(string, ...zap.Field)         {}
func (nopLogger) Error(string, error, ...zap.Field) {}
func (nopLogger) Fatal(string, error, ...zap.Field) {}
func (l nopLogger) With(...zap.Field) logger.Logger { return l }

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[uuid.UUID]*video.Video

	listFn    func(filter video.Filter, req query.PageRequest) ([]video.Video, int, error)
	listReq   *query.PageRequest
	updateErr error
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[uuid.UUID]*video.Video)}
}

func (r *fakeVideoRepo) Save(_ context.Context, v *video.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos[v.ID] = v
	return nil
}

func (r *fakeVideoRepo) FindByID(_ context.Context, id uuid.UUID) (*video.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, video.ErrVideoNotFound
	}
	return v, nil
}

func (r *fakeVideoRepo) Update(_ context.Context, id uuid.UUID, fields video.UpdateFields) (*video.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	v, ok := r.videos[id]
	if !ok {
		return nil, video.ErrVideoNotFound
	}
	if fields.Title != nil {
		v.Title = *fields.Title
	}
	if fields.Description != nil {
		v.Description = *fields.Description
	}
	if fields.Thumbnail != nil {
		v.Thumbnail = *fields.Thumbnail
	}
	return v, nil
}

func (r *fakeVideoRepo) SetPublished(_ context.Context, id uuid.UUID, published bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return video.ErrVideoNotFound
	}
	v.IsPublished = published
	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[id]; !ok {
		return video.ErrVideoNotFound
	}
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) List(_ context.Context, filter video.Filter, req query.PageRequest) ([]video.Video, int, error) {
	r.mu.Lock()
	r.listReq = &req
	r.mu.Unlock()
	if r.listFn != nil {
		return r.listFn(filter, req)
	}
	return []video.Video{}, 0, nil
}

func (r *fakeVideoRepo) IncrementViews(_ context.Context, id uuid.UUID, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return video.ErrVideoNotFound
	}
	v.Views += delta
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateDetails(_ context.Context, id uuid.UUID, fullname, email string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	u.Fullname = fullname
	u.Email = email
	return u, nil
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarURL string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	u.Avatar = avatarURL
	return u, nil
}

func (r *fakeUserRepo) UpdateCoverImage(_ context.Context, id uuid.UUID, coverURL string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	u.CoverImage = &coverURL
	return u, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) ChannelProfile(_ context.Context, username string, _ uuid.UUID) (*user.ChannelProfile, error) {
	for _, u := range r.users {
		if u.Username == username {
			return &user.ChannelProfile{ID: u.ID, Username: u.Username, Fullname: u.Fullname}, nil
		}
	}
	return nil, user.ErrUserNotFound
}

type fakeHistoryRepo struct {
	recorded chan uuid.UUID
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{recorded: make(chan uuid.UUID, 8)}
}

func (r *fakeHistoryRepo) Record(_ context.Context, userID, videoID uuid.UUID, _ time.Time) error {
	r.recorded <- videoID
	return nil
}

func (r *fakeHistoryRepo) ListByUser(_ context.Context, _ uuid.UUID, _ query.PageRequest) ([]video.WatchEntry, int, error) {
	return []video.WatchEntry{}, 0, nil
}

type fakePublisher struct {
	viewEvents  chan event.ViewEventPayload
	mediaEvents chan event.MediaEventPayload
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{
		viewEvents:  make(chan event.ViewEventPayload, 8),
		mediaEvents: make(chan event.MediaEventPayload, 8),
	}
}

func (p *fakePublisher) PublishViewEvent(_ context.Context, payload event.ViewEventPayload) error {
	p.viewEvents <- payload
	return nil
}

func (p *fakePublisher) PublishMediaEvent(_ context.Context, payload event.MediaEventPayload) error {
	p.mediaEvents <- payload
	return nil
}

type fakeUploader struct {
	deleted chan string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{deleted: make(chan string, 8)}
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader, folder, publicID, _ string) (*service.UploadResult, error) {
	return &service.UploadResult{
		SecureURL: "https://cdn.example.com/" + folder + "/" + publicID,
		PublicID:  folder + "/" + publicID,
	}, nil
}

func (u *fakeUploader) Delete(_ context.Context, publicID, _ string) error {
	u.deleted <- publicID
	return nil
}
