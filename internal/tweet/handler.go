package tweet

import (
	"encoding/json"
	"net/http"

	"vidtube/internal/common"
)

type tweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type Handler struct {
	service TweetService
}

func NewHandler(service TweetService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}

	var req tweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.BadRequest("invalid request body"))
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	tweet, err := h.service.CreateTweet(r.Context(), user.UserID, req.Content)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := common.PathID(r, "userId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	page, err := h.service.ListUserTweets(r.Context(), ownerID, common.ParsePagination(r.URL.Query()))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, page, "Tweets fetched successfully")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	tweetID, err := common.PathID(r, "tweetId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	var req tweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.BadRequest("invalid request body"))
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	tweet, err := h.service.UpdateTweet(r.Context(), user.UserID, tweetID, req.Content)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	tweetID, err := common.PathID(r, "tweetId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	if err := h.service.DeleteTweet(r.Context(), user.UserID, tweetID); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, nil, "Tweet deleted successfully")
}
