package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"vidtube/internal/comment"
	"vidtube/internal/common"
	"vidtube/internal/dashboard"
	"vidtube/internal/engagement"
	"vidtube/internal/playlist"
	"vidtube/internal/tweet"
	"vidtube/internal/user"
	"vidtube/internal/video"
)

// Handlers groups every feature handler the router mounts.
type Handlers struct {
	User       *user.Handler
	Video      *video.Handler
	Comment    *comment.Handler
	Engagement *engagement.Handler
	Playlist   *playlist.Handler
	Tweet      *tweet.Handler
	Dashboard  *dashboard.Handler
}

// NewRouter mounts the full API surface under /api/v1.
func NewRouter(h Handlers, auth *common.AuthMiddleware, logger *zap.Logger) *mux.Router {
	root := mux.NewRouter()
	root.Use(requestLogging(logger))
	root.Use(corsMiddleware)

	root.HandleFunc("/api/v1/healthCheck", healthCheck).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()

	// users
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", h.User.Register).Methods(http.MethodPost)
	users.HandleFunc("/login", h.User.Login).Methods(http.MethodPost)
	users.HandleFunc("/refresh-token", h.User.RefreshToken).Methods(http.MethodPost)
	users.Handle("/logout", auth.Require(http.HandlerFunc(h.User.Logout))).Methods(http.MethodPost)
	users.Handle("/current-user", auth.Require(http.HandlerFunc(h.User.CurrentUser))).Methods(http.MethodGet)
	users.Handle("/change-password", auth.Require(http.HandlerFunc(h.User.ChangePassword))).Methods(http.MethodPost)
	users.Handle("/update-account", auth.Require(http.HandlerFunc(h.User.UpdateAccount))).Methods(http.MethodPatch)
	users.Handle("/avatar", auth.Require(http.HandlerFunc(h.User.UpdateAvatar))).Methods(http.MethodPatch)
	users.Handle("/cover-image", auth.Require(http.HandlerFunc(h.User.UpdateCoverImage))).Methods(http.MethodPatch)
	users.Handle("/c/{username}", auth.Optional(http.HandlerFunc(h.User.ChannelProfile))).Methods(http.MethodGet)

	// videos
	videos := api.PathPrefix("/video").Subrouter()
	videos.Handle("", auth.Optional(http.HandlerFunc(h.Video.List))).Methods(http.MethodGet)
	videos.Handle("", auth.Require(http.HandlerFunc(h.Video.Publish))).Methods(http.MethodPost)
	videos.Handle("/{videoId}", auth.Optional(http.HandlerFunc(h.Video.Get))).Methods(http.MethodGet)
	videos.Handle("/{videoId}", auth.Require(http.HandlerFunc(h.Video.Update))).Methods(http.MethodPatch)
	videos.Handle("/{videoId}", auth.Require(http.HandlerFunc(h.Video.Delete))).Methods(http.MethodDelete)
	videos.Handle("/toggle/publish/{videoId}", auth.Require(http.HandlerFunc(h.Video.TogglePublish))).Methods(http.MethodPatch)

	// comments
	comments := api.PathPrefix("/comment").Subrouter()
	comments.Handle("/{videoId}", http.HandlerFunc(h.Comment.List)).Methods(http.MethodGet)
	comments.Handle("/{videoId}", auth.Require(http.HandlerFunc(h.Comment.Add))).Methods(http.MethodPost)
	comments.Handle("/c/{commentId}", auth.Require(http.HandlerFunc(h.Comment.Update))).Methods(http.MethodPatch)
	comments.Handle("/c/{commentId}", auth.Require(http.HandlerFunc(h.Comment.Delete))).Methods(http.MethodDelete)

	// likes
	likes := api.PathPrefix("/like").Subrouter()
	likes.Handle("/toggle/v/{videoId}", auth.Require(http.HandlerFunc(h.Engagement.ToggleVideoLike))).Methods(http.MethodPost)
	likes.Handle("/toggle/c/{commentId}", auth.Require(http.HandlerFunc(h.Engagement.ToggleCommentLike))).Methods(http.MethodPost)
	likes.Handle("/toggle/t/{tweetId}", auth.Require(http.HandlerFunc(h.Engagement.ToggleTweetLike))).Methods(http.MethodPost)
	likes.Handle("/videos", auth.Require(http.HandlerFunc(h.Engagement.LikedVideos))).Methods(http.MethodGet)

	// subscriptions
	subs := api.PathPrefix("/subscription").Subrouter()
	subs.Handle("/c/{channelId}", auth.Require(http.HandlerFunc(h.Engagement.ToggleSubscription))).Methods(http.MethodPost)
	subs.Handle("/c/{channelId}", http.HandlerFunc(h.Engagement.ChannelSubscribers)).Methods(http.MethodGet)
	subs.Handle("/u", auth.Require(http.HandlerFunc(h.Engagement.SubscribedChannels))).Methods(http.MethodGet)

	// playlists
	playlists := api.PathPrefix("/playlist").Subrouter()
	playlists.Handle("", auth.Require(http.HandlerFunc(h.Playlist.Create))).Methods(http.MethodPost)
	playlists.Handle("/{playlistId}", http.HandlerFunc(h.Playlist.Get)).Methods(http.MethodGet)
	playlists.Handle("/{playlistId}", auth.Require(http.HandlerFunc(h.Playlist.Update))).Methods(http.MethodPatch)
	playlists.Handle("/{playlistId}", auth.Require(http.HandlerFunc(h.Playlist.Delete))).Methods(http.MethodDelete)
	playlists.Handle("/add/{videoId}/{playlistId}", auth.Require(http.HandlerFunc(h.Playlist.AddVideo))).Methods(http.MethodPatch)
	playlists.Handle("/remove/{videoId}/{playlistId}", auth.Require(http.HandlerFunc(h.Playlist.RemoveVideo))).Methods(http.MethodPatch)
	playlists.Handle("/user/{userId}", http.HandlerFunc(h.Playlist.ListByUser)).Methods(http.MethodGet)

	// tweets
	tweets := api.PathPrefix("/tweet").Subrouter()
	tweets.Handle("", auth.Require(http.HandlerFunc(h.Tweet.Create))).Methods(http.MethodPost)
	tweets.Handle("/user/{userId}", http.HandlerFunc(h.Tweet.ListByUser)).Methods(http.MethodGet)
	tweets.Handle("/{tweetId}", auth.Require(http.HandlerFunc(h.Tweet.Update))).Methods(http.MethodPatch)
	tweets.Handle("/{tweetId}", auth.Require(http.HandlerFunc(h.Tweet.Delete))).Methods(http.MethodDelete)

	// dashboard
	dash := api.PathPrefix("/dashboard").Subrouter()
	dash.Handle("/stats", auth.Require(http.HandlerFunc(h.Dashboard.Stats))).Methods(http.MethodGet)
	dash.Handle("/videos", auth.Require(http.HandlerFunc(h.Dashboard.Videos))).Methods(http.MethodGet)

	return root
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "OK"}, "Health check passed")
}

// requestLogging logs method, path, status and latency for every request.
func requestLogging(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
