package comment

import (
	"encoding/json"
	"net/http"

	"vidtube/internal/common"
)

type commentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type Handler struct {
	service CommentService
}

func NewHandler(service CommentService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	videoID, err := common.PathID(r, "videoId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	page, err := h.service.ListComments(r.Context(), videoID, common.ParsePagination(r.URL.Query()))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, page, "Comments fetched successfully")
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	videoID, err := common.PathID(r, "videoId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.BadRequest("invalid request body"))
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	comment, err := h.service.AddComment(r.Context(), user.UserID, videoID, req.Content)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, comment, "Comment added successfully")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	commentID, err := common.PathID(r, "commentId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.BadRequest("invalid request body"))
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), user.UserID, commentID, req.Content)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, comment, "Comment updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	commentID, err := common.PathID(r, "commentId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	if err := h.service.DeleteComment(r.Context(), user.UserID, commentID); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, nil, "Comment deleted successfully")
}
