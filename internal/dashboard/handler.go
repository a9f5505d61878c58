package dashboard

import (
	"net/http"

	"vidtube/internal/common"
)

type Handler struct {
	service DashboardService
}

func NewHandler(service DashboardService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}

	stats, err := h.service.GetChannelStats(r.Context(), user.UserID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *Handler) Videos(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}

	videos, err := h.service.GetChannelVideos(r.Context(), user.UserID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, videos, "Channel videos fetched successfully")
}
