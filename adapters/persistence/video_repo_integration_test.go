package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/viewtube/internal/domain/query"
	"github.com/khoahotran/viewtube/internal/domain/user"
	"github.com/khoahotran/viewtube/internal/domain/video"
	"github.com/khoahotran/viewtube/pkg/logger"
)

type VideoRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger
	videoRepo   video.Repository
	userRepo    user.Repository
	owner       *user.User
}

func (s *VideoRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.testLogger = logger.NewZapLogger("development")
	s.videoRepo = NewPostgresVideoRepo(s.dbPool, s.testLogger)
	s.userRepo = NewPostgresUserRepo(s.dbPool, s.testLogger)

	s.owner = s.seedUser("creator")
}

func (s *VideoRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *VideoRepoIntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(context.Background(), `DELETE FROM videos`)
	s.Require().NoError(err)
}

func TestVideoRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(VideoRepoIntegrationTestSuite))
}

func (s *VideoRepoIntegrationTestSuite) seedUser(username string) *user.User {
	u := &user.User{
		ID:           uuid.New(),
		Fullname:     username,
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hashedpassword",
		Avatar:       "https://cdn.example.com/" + username + ".jpg",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	s.Require().NoError(s.userRepo.Save(context.Background(), u))
	return u
}

func (s *VideoRepoIntegrationTestSuite) seedVideo(title, description string, published bool, createdAt time.Time) *video.Video {
	v := &video.Video{
		ID:          uuid.New(),
		OwnerID:     s.owner.ID,
		VideoFile:   "https://cdn.example.com/v.mp4",
		Thumbnail:   "https://cdn.example.com/t.jpg",
		Title:       title,
		Description: description,
		Duration:    60,
		IsPublished: published,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	s.Require().NoError(s.videoRepo.Save(context.Background(), v))
	return v
}

func (s *VideoRepoIntegrationTestSuite) Test_Save_And_FindByID_EnrichesOwner() {
	v := s.seedVideo("First Upload", "hello", true, time.Now().UTC())

	found, err := s.videoRepo.FindByID(context.Background(), v.ID)
	s.Require().NoError(err)

	s.Equal(v.Title, found.Title)
	s.Require().NotNil(found.Owner)
	s.Equal(s.owner.ID, found.Owner.ID)
	s.Equal(s.owner.Username, found.Owner.Username)
	s.Equal(s.owner.Avatar, found.Owner.Avatar)
}

func (s *VideoRepoIntegrationTestSuite) Test_FindByID_NotFound() {
	_, err := s.videoRepo.FindByID(context.Background(), uuid.New())
	s.ErrorIs(err, video.ErrVideoNotFound)
}

func (s *VideoRepoIntegrationTestSuite) Test_List_HidesUnpublishedFromStrangers() {
	s.seedVideo("published", "x", true, time.Now().UTC())
	s.seedVideo("draft", "x", false, time.Now().UTC())

	req := query.Normalize("", "", "", "")

	// anonymous viewer
	videos, total, err := s.videoRepo.List(context.Background(), video.Filter{}, req)
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Require().Len(videos, 1)
	s.Equal("published", videos[0].Title)

	// the owner sees both
	videos, total, err = s.videoRepo.List(context.Background(), video.Filter{ViewerID: s.owner.ID}, req)
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Len(videos, 2)
}

func (s *VideoRepoIntegrationTestSuite) Test_List_PaginationPartition() {
	base := time.Now().UTC().Add(-time.Hour)
	// identical created_at forces the id tie-break to keep pages disjoint
	for i := 0; i < 25; i++ {
		s.seedVideo(fmt.Sprintf("video %02d", i), "x", true, base)
	}

	seen := make(map[uuid.UUID]bool)
	for page := 1; page <= 3; page++ {
		req := query.Normalize(fmt.Sprint(page), "10", "createdAt", "desc")
		videos, total, err := s.videoRepo.List(context.Background(), video.Filter{}, req)
		s.Require().NoError(err)
		s.Equal(25, total)

		wantLen := 10
		if page == 3 {
			wantLen = 5
		}
		s.Require().Len(videos, wantLen, "page %d", page)

		for _, v := range videos {
			s.False(seen[v.ID], "video %s appeared on more than one page", v.ID)
			seen[v.ID] = true
		}
	}
	s.Len(seen, 25)
}

func (s *VideoRepoIntegrationTestSuite) Test_List_SortByViews() {
	a := s.seedVideo("low", "x", true, time.Now().UTC())
	b := s.seedVideo("high", "x", true, time.Now().UTC())
	s.Require().NoError(s.videoRepo.IncrementViews(context.Background(), b.ID, 100))
	s.Require().NoError(s.videoRepo.IncrementViews(context.Background(), a.ID, 5))

	req := query.Normalize("", "", "views", "desc")
	videos, _, err := s.videoRepo.List(context.Background(), video.Filter{}, req)
	s.Require().NoError(err)
	s.Require().Len(videos, 2)
	s.Equal("high", videos[0].Title)
	s.Equal(int64(100), videos[0].Views)
	s.Equal("low", videos[1].Title)
}

func (s *VideoRepoIntegrationTestSuite) Test_List_TextSearchRanksRelevanceFirst() {
	// title matches carry more weight than description matches
	s.seedVideo("cooking pasta at home", "weeknight dinner ideas", true, time.Now().UTC())
	s.seedVideo("travel vlog", "we tried cooking pasta on the road", true, time.Now().UTC())
	s.seedVideo("unrelated gaming stream", "no food here", true, time.Now().UTC())

	req := query.Normalize("", "", "", "")
	videos, total, err := s.videoRepo.List(context.Background(), video.Filter{TextQuery: "cooking pasta"}, req)
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Require().Len(videos, 2)
	s.Equal("cooking pasta at home", videos[0].Title)
	s.Equal("travel vlog", videos[1].Title)
}

func (s *VideoRepoIntegrationTestSuite) Test_List_FilterByOwner() {
	other := s.seedUser(fmt.Sprintf("other-%d", time.Now().UnixNano()))
	s.seedVideo("mine", "x", true, time.Now().UTC())

	otherVideo := &video.Video{
		ID:          uuid.New(),
		OwnerID:     other.ID,
		VideoFile:   "https://cdn.example.com/v.mp4",
		Thumbnail:   "https://cdn.example.com/t.jpg",
		Title:       "theirs",
		Duration:    30,
		IsPublished: true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	s.Require().NoError(s.videoRepo.Save(context.Background(), otherVideo))

	req := query.Normalize("", "", "", "")
	videos, total, err := s.videoRepo.List(context.Background(), video.Filter{OwnerID: &other.ID}, req)
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Require().Len(videos, 1)
	s.Equal("theirs", videos[0].Title)
}

func (s *VideoRepoIntegrationTestSuite) Test_Update_PartialFields() {
	v := s.seedVideo("old title", "old description", true, time.Now().UTC())

	newTitle := "new title"
	updated, err := s.videoRepo.Update(context.Background(), v.ID, video.UpdateFields{Title: &newTitle})
	s.Require().NoError(err)

	s.Equal("new title", updated.Title)
	s.Equal("old description", updated.Description)
}

func (s *VideoRepoIntegrationTestSuite) Test_SetPublished_And_Delete() {
	v := s.seedVideo("toggle me", "x", true, time.Now().UTC())

	s.Require().NoError(s.videoRepo.SetPublished(context.Background(), v.ID, false))
	found, err := s.videoRepo.FindByID(context.Background(), v.ID)
	s.Require().NoError(err)
	s.False(found.IsPublished)

	s.Require().NoError(s.videoRepo.Delete(context.Background(), v.ID))
	_, err = s.videoRepo.FindByID(context.Background(), v.ID)
	s.ErrorIs(err, video.ErrVideoNotFound)

	s.ErrorIs(s.videoRepo.Delete(context.Background(), v.ID), video.ErrVideoNotFound)
}
