package engagement

import (
	"net/http"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
)

type Handler struct {
	service EngagementService
}

func NewHandler(service EngagementService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, dbmysql.LikeTargetVideo, "videoId")
}

func (h *Handler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, dbmysql.LikeTargetComment, "commentId")
}

func (h *Handler) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, dbmysql.LikeTargetTweet, "tweetId")
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request, target dbmysql.LikeTarget, param string) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	targetID, err := common.PathID(r, param)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	result, err := h.service.ToggleLike(r.Context(), user.UserID, target, targetID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result, "Like toggled successfully")
}

func (h *Handler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}

	videos, err := h.service.ListLikedVideos(r.Context(), user.UserID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, videos, "Liked videos fetched successfully")
}

func (h *Handler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	channelID, err := common.PathID(r, "channelId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	result, err := h.service.ToggleSubscription(r.Context(), user.UserID, channelID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result, "Subscription toggled successfully")
}

func (h *Handler) ChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := common.PathID(r, "channelId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	subscribers, err := h.service.ListChannelSubscribers(r.Context(), channelID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

func (h *Handler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}

	channels, err := h.service.ListSubscribedChannels(r.Context(), user.UserID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
