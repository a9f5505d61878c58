package di

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vidtube/internal/api"
	"vidtube/internal/comment"
	"vidtube/internal/common"
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

// Application bundles everything a process entrypoint needs.
type Application struct {
	Config   *config.Config
	DB       *gorm.DB
	Mongo    *dbmongo.MongoClient
	Logger   *zap.Logger
	Router   *api.Handlers
	Auth     *common.AuthMiddleware
	MediaSrv *media.HTTPServer
}

func ProvideTokenManager(cnf *config.Config) *common.TokenManager {
	return common.NewTokenManager(cnf)
}

func ProvideMediaStorage(mongo *dbmongo.MongoClient) *dbmongo.MediaStorage {
	return dbmongo.NewMediaStorage(mongo)
}

// ProvideMediaService binds the concrete media service to the uploader
// interface the feature services consume.
func ProvideMediaService(cnf *config.Config, storage *dbmongo.MediaStorage, logger *zap.Logger) media.Uploader {
	return media.NewService(cnf, storage, logger)
}

func ProvideAuthMiddleware(tokens *common.TokenManager, userRepo user.UserRepository) *common.AuthMiddleware {
	return common.NewAuthMiddleware(tokens, user.NewLoader(userRepo))
}

func ProvideSubscriptionStats(subRepo engagement.SubscriptionRepository) user.SubscriptionStats {
	return subRepo
}

func ProvideHandlers(
	userHandler *user.Handler,
	videoHandler *video.Handler,
	commentHandler *comment.Handler,
	engagementHandler *engagement.Handler,
	playlistHandler *playlist.Handler,
	tweetHandler *tweet.Handler,
	dashboardHandler *dashboard.Handler,
) *api.Handlers {
	return &api.Handlers{
		User:       userHandler,
		Video:      videoHandler,
		Comment:    commentHandler,
		Engagement: engagementHandler,
		Playlist:   playlistHandler,
		Tweet:      tweetHandler,
		Dashboard:  dashboardHandler,
	}
}
