package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/viewtube/adapters/event"
	httpAdapter "github.com/khoahotran/viewtube/adapters/http"
	"github.com/khoahotran/viewtube/adapters/media_storage"
	"github.com/khoahotran/viewtube/adapters/persistence"
	authUC "github.com/khoahotran/viewtube/internal/application/usecase/auth"
	subUC "github.com/khoahotran/viewtube/internal/application/usecase/subscription"
	tweetUC "github.com/khoahotran/viewtube/internal/application/usecase/tweet"
	userUC "github.com/khoahotran/viewtube/internal/application/usecase/user"
	videoUC "github.com/khoahotran/viewtube/internal/application/usecase/video"
	"github.com/khoahotran/viewtube/internal/config"
	"github.com/khoahotran/viewtube/pkg/auth"
	"github.com/khoahotran/viewtube/pkg/logger"
	"github.com/khoahotran/viewtube/pkg/tracing"
)

func main() {
	fmt.Println("Starting ViewTube API Server...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Tracing
	tracerProvider, err := tracing.NewTracerProvider(cfg, appLogger, "viewtube-api")
	if err != nil {
		appLogger.Fatal("cannot init tracer provider", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			appLogger.Error("failed to shut down tracer provider", err)
		}
	}()

	// Infrastructure
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		appLogger.Fatal("cannot init uploader", err)
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	videoRepo := persistence.NewPostgresVideoRepo(dbPool, appLogger)
	tweetRepo := persistence.NewPostgresTweetRepo(dbPool, appLogger)
	subscriptionRepo := persistence.NewPostgresSubscriptionRepo(dbPool, appLogger)
	watchHistoryRepo := persistence.NewPostgresWatchHistoryRepo(dbPool, appLogger)
	tokenStore := persistence.NewRedisTokenStore(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessLifespan, cfg.Auth.RefreshLifespan)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, uploader, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, tokenStore, appLogger)
	logoutUseCase := authUC.NewLogoutUseCase(tokenStore, appLogger)
	refreshTokenUseCase := authUC.NewRefreshTokenUseCase(jwtSvc, tokenStore, appLogger)
	changePasswordUseCase := authUC.NewChangePasswordUseCase(userRepo, appLogger)

	getCurrentUserUseCase := userUC.NewGetCurrentUserUseCase(userRepo)
	updateAccountUseCase := userUC.NewUpdateAccountUseCase(userRepo, appLogger)
	updateImagesUseCase := userUC.NewUpdateImagesUseCase(userRepo, uploader, appLogger)
	channelProfileUseCase := userUC.NewChannelProfileUseCase(userRepo, appLogger)
	watchHistoryUseCase := userUC.NewWatchHistoryUseCase(watchHistoryRepo, appLogger)

	listVideosUseCase := videoUC.NewListVideosUseCase(videoRepo, userRepo, appLogger)
	publishVideoUseCase := videoUC.NewPublishVideoUseCase(videoRepo, uploader, appLogger)
	getVideoUseCase := videoUC.NewGetVideoUseCase(videoRepo, watchHistoryRepo, kafkaClient, appLogger)
	updateVideoUseCase := videoUC.NewUpdateVideoUseCase(videoRepo, uploader, kafkaClient, appLogger)
	deleteVideoUseCase := videoUC.NewDeleteVideoUseCase(videoRepo, kafkaClient, appLogger)
	togglePublishUseCase := videoUC.NewTogglePublishUseCase(videoRepo, appLogger)

	tweetUseCase := tweetUC.NewUseCase(tweetRepo, userRepo, appLogger)
	subscriptionUseCase := subUC.NewUseCase(subscriptionRepo, userRepo, appLogger)

	// HTTP Handlers
	userHandler := httpAdapter.NewUserHandler(
		registerUseCase,
		loginUseCase,
		logoutUseCase,
		refreshTokenUseCase,
		changePasswordUseCase,
		getCurrentUserUseCase,
		updateAccountUseCase,
		updateImagesUseCase,
		channelProfileUseCase,
		watchHistoryUseCase,
		cfg.Auth.AccessLifespan,
		cfg.Auth.RefreshLifespan,
	)
	videoHandler := httpAdapter.NewVideoHandler(
		listVideosUseCase,
		publishVideoUseCase,
		getVideoUseCase,
		updateVideoUseCase,
		deleteVideoUseCase,
		togglePublishUseCase,
	)
	tweetHandler := httpAdapter.NewTweetHandler(tweetUseCase)
	subscriptionHandler := httpAdapter.NewSubscriptionHandler(subscriptionUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	optionalAuth := httpAdapter.OptionalAuthMiddleware(jwtSvc)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh-token", userHandler.RefreshToken)

			users.POST("/logout", authMiddleware, userHandler.Logout)
			users.POST("/change-password", authMiddleware, userHandler.ChangePassword)
			users.GET("/me", authMiddleware, userHandler.CurrentUser)
			users.PATCH("/me", authMiddleware, userHandler.UpdateAccount)
			users.PATCH("/me/avatar", authMiddleware, userHandler.UpdateAvatar)
			users.PATCH("/me/cover-image", authMiddleware, userHandler.UpdateCoverImage)
			users.GET("/me/watch-history", authMiddleware, userHandler.WatchHistory)

			users.GET("/c/:username", optionalAuth, userHandler.ChannelProfile)
		}

		videos := api.Group("/videos")
		{
			videos.GET("", optionalAuth, videoHandler.ListVideos)
			videos.GET("/:id", optionalAuth, videoHandler.GetVideo)

			videos.POST("", authMiddleware, videoHandler.PublishVideo)
			videos.PATCH("/:id", authMiddleware, videoHandler.UpdateVideo)
			videos.DELETE("/:id", authMiddleware, videoHandler.DeleteVideo)
			videos.PATCH("/:id/toggle-publish", authMiddleware, videoHandler.TogglePublish)
		}

		tweets := api.Group("/tweets")
		{
			tweets.GET("/user/:userId", tweetHandler.ListUserTweets)

			tweets.POST("", authMiddleware, tweetHandler.CreateTweet)
			tweets.PATCH("/:id", authMiddleware, tweetHandler.UpdateTweet)
			tweets.DELETE("/:id", authMiddleware, tweetHandler.DeleteTweet)
		}

		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.GET("/channel/:channelId", subscriptionHandler.ListSubscribers)
			subscriptions.GET("/user/:subscriberId", subscriptionHandler.ListSubscribedChannels)

			subscriptions.POST("/channel/:channelId", authMiddleware, subscriptionHandler.ToggleSubscription)
		}
	}

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
