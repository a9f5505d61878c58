package video

import (
	"net/http"
	"strconv"

	"vidtube/internal/common"
	"vidtube/internal/config"
)

type Handler struct {
	service   VideoService
	maxUpload int64 // request body cap for multipart uploads, in bytes
}

func NewHandler(service VideoService, cnf *config.Config) *Handler {
	return &Handler{
		service:   service,
		maxUpload: cnf.Media.MaxUploadMB << 20,
	}
}

// List handles GET /videos with page, limit, query, sortBy, sortType and
// userId filters. Auth is optional here.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	opts := ListOptions{
		Pagination: common.ParsePagination(query),
		Query:      query.Get("query"),
		SortBy:     query.Get("sortBy"),
		SortType:   query.Get("sortType"),
	}
	if raw := query.Get("userId"); raw != "" {
		ownerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			common.RespondError(w, common.BadRequest("invalid userId"))
			return
		}
		opts.OwnerID = ownerID
	}

	page, err := h.service.ListVideos(r.Context(), opts)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, page, "Videos fetched successfully")
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	user, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("authentication required"))
		return
	}

	if err := common.ParseMultipart(w, r, h.maxUpload); err != nil {
		common.RespondError(w, err)
		return
	}

	input := PublishInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if raw := r.FormValue("duration"); raw != "" {
		duration, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			common.RespondError(w, common.BadRequest("invalid duration"))
			return
		}
		input.Duration = duration
	}

	videoFile, videoInfo, err := r.FormFile("videoFile")
	if err != nil {
		common.RespondError(w, common.BadRequest("video file is required"))
		return
	}
	defer videoFile.Close()
	input.VideoFile = videoFile
	input.VideoInfo = videoInfo

	thumbnail, thumbInfo, err := r.FormFile("thumbnail")
	if err != nil {
		common.RespondError(w, common.BadRequest("thumbnail is required"))
		return
	}
	defer thumbnail.Close()
	input.Thumbnail = thumbnail
	input.ThumbInfo = thumbInfo

	view, err := h.service.PublishVideo(r.Context(), user.UserID, input)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, view, "Video published successfully")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := common.PathID(r, "videoId")
	if err != nil {
		common.RespondError(w, err)
		return
	}

	var viewerID uint64
	if user, ok := common.CurrentUser(r.Context()); ok {
		viewerID = user.UserID
	}

	view, err := h.service.GetVideoByID(r.Context(), videoID, viewerID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view, "Video fetched successfully")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
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

	if err := common.ParseMultipart(w, r, h.maxUpload); err != nil {
		common.RespondError(w, err)
		return
	}

	input := UpdateInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if thumbnail, thumbInfo, err := r.FormFile("thumbnail"); err == nil {
		defer thumbnail.Close()
		input.Thumbnail = thumbnail
		input.ThumbInfo = thumbInfo
	}

	video, err := h.service.UpdateVideo(r.Context(), user.UserID, videoID, input)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, video, "Video updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteVideo(r.Context(), user.UserID, videoID); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, nil, "Video deleted successfully")
}

func (h *Handler) TogglePublish(w http.ResponseWriter, r *http.Request) {
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

	video, err := h.service.TogglePublish(r.Context(), user.UserID, videoID)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, video, "Publish status toggled successfully")
}
