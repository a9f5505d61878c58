package playlist

import (
	"context"
	"encoding/json"
	"net/http"

	"vidtube/internal/common"
)

type playlistRequest struct {
	Name        string `json:"name" validate:"omitempty,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type Handler struct {
	service PlaylistService
}

func NewHandler(service PlaylistService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.BadRequest("invalid request body"))
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	playlist, err := h.service.CreatePlaylist(r.Context(), user.UserID, req.Name, req.Description)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := common.PathID(r, "playlistId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	detail, err := h.service.GetPlaylistByID(r.Context(), playlistID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, detail, "Playlist fetched successfully")
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := common.PathID(r, "userId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	playlists, err := h.service.ListUserPlaylists(r.Context(), ownerID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, playlists, "Playlists fetched successfully")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	playlistID, err := common.PathID(r, "playlistId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.BadRequest("invalid request body"))
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	playlist, err := h.service.UpdatePlaylist(r.Context(), user.UserID, playlistID, req.Name, req.Description)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, playlist, "Playlist updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	playlistID, err := common.PathID(r, "playlistId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	if err := h.service.DeletePlaylist(r.Context(), user.UserID, playlistID); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, nil, "Playlist deleted successfully")
}

func (h *Handler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.memberChange(w, r, h.service.AddVideo, "Video added to playlist")
}

func (h *Handler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.memberChange(w, r, h.service.RemoveVideo, "Video removed from playlist")
}

func (h *Handler) memberChange(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, actorID, playlistID, videoID uint64) (*PlaylistDetail, error),
	message string,
) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}
	playlistID, err := common.PathID(r, "playlistId")
	if err != nil {
		common.RespondError(w, err)
		return
	}
	videoID, err := common.PathID(r, "videoId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	detail, err := op(r.Context(), user.UserID, playlistID, videoID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, detail, message)
}
