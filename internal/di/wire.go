//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vidtube/internal/comment"
	"vidtube/internal/config"
	"vidtube/internal/dashboard"
	"vidtube/internal/dbmongo"
	"vidtube/internal/engagement"
	"vidtube/internal/media"
	"vidtube/internal/playlist"
	"vidtube/internal/tweet"
	"vidtube/internal/user"
	"vidtube/internal/video"
)

func InitializeApplication(cnf *config.Config, db *gorm.DB, mongo *dbmongo.MongoClient, logger *zap.Logger) (*Application, error) {
	wire.Build(
		ProvideTokenManager,
		ProvideMediaStorage,
		ProvideMediaService,
		ProvideAuthMiddleware,

		user.NewUserRepository,
		user.NewUserService,
		user.NewHandler,

		video.NewVideoRepository,
		video.NewVideoService,
		video.NewHandler,

		comment.NewCommentRepository,
		comment.NewCommentService,
		comment.NewHandler,

		engagement.NewLikeRepository,
		engagement.NewSubscriptionRepository,
		engagement.NewEngagementService,
		engagement.NewHandler,

		playlist.NewPlaylistRepository,
		playlist.NewPlaylistService,
		playlist.NewHandler,

		tweet.NewTweetRepository,
		tweet.NewTweetService,
		tweet.NewHandler,

		dashboard.NewDashboardRepository,
		dashboard.NewDashboardService,
		dashboard.NewHandler,

		media.NewHTTPServer,

		ProvideSubscriptionStats,
		ProvideHandlers,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
