package video

import (
	"context"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
	"vidtube/internal/media"
)

// sortColumns whitelists the feed sort keys and maps them onto real
// columns. Anything else falls back to created_at.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"views":      "views",
	"duration":   "duration",
	"title":      "title",
}

// ListOptions is the raw feed request as it arrives from the query string.
type ListOptions struct {
	Pagination common.Pagination
	Query      string
	OwnerID    uint64
	SortBy     string
	SortType   string
}

type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   multipart.File
	VideoInfo   *multipart.FileHeader
	Thumbnail   multipart.File
	ThumbInfo   *multipart.FileHeader
}

type UpdateInput struct {
	Title       string
	Description string
	Thumbnail   multipart.File
	ThumbInfo   *multipart.FileHeader
}

// VideoView is a video decorated with owner profile and like data for
// API responses.
type VideoView struct {
	dbmysql.Video
	Owner      dbmysql.Profile `json:"owner"`
	TotalLikes int64           `json:"totalLikes"`
	IsLiked    bool            `json:"isLiked"`
}

type FeedPage struct {
	Videos      []VideoView `json:"videos"`
	TotalVideos int64       `json:"totalVideos"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int64       `json:"totalPages"`
}

type VideoService interface {
	ListVideos(ctx context.Context, opts ListOptions) (*FeedPage, error)
	PublishVideo(ctx context.Context, ownerID uint64, input PublishInput) (*VideoView, error)
	GetVideoByID(ctx context.Context, videoID, viewerID uint64) (*VideoView, error)
	UpdateVideo(ctx context.Context, ownerID, videoID uint64, input UpdateInput) (*dbmysql.Video, error)
	DeleteVideo(ctx context.Context, ownerID, videoID uint64) error
	TogglePublish(ctx context.Context, ownerID, videoID uint64) (*dbmysql.Video, error)
}

type videoService struct {
	videoRepo VideoRepository
	uploader  media.Uploader
	logger    *zap.Logger
}

func NewVideoService(videoRepo VideoRepository, uploader media.Uploader, logger *zap.Logger) VideoService {
	return &videoService{videoRepo: videoRepo, uploader: uploader, logger: logger}
}

func (s *videoService) ListVideos(ctx context.Context, opts ListOptions) (*FeedPage, error) {
	filter := ListFilter{
		Query:         strings.ToLower(strings.TrimSpace(opts.Query)),
		OwnerID:       opts.OwnerID,
		SortColumn:    resolveSortColumn(opts.SortBy),
		SortDesc:      !strings.EqualFold(opts.SortType, "asc"),
		Offset:        opts.Pagination.Offset(),
		Limit:         opts.Pagination.Limit,
		OnlyPublished: true,
	}

	videos, err := s.videoRepo.ListVideos(ctx, filter)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	total, err := s.videoRepo.CountVideos(ctx, filter)
	if err != nil {
		return nil, common.AsApiError(err)
	}

	views, err := s.decorate(ctx, videos, 0)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Videos:      views,
		TotalVideos: total,
		CurrentPage: opts.Pagination.Page,
		TotalPages:  common.TotalPages(total, opts.Pagination.Limit),
	}, nil
}

func resolveSortColumn(sortBy string) string {
	if col, ok := sortColumns[sortBy]; ok {
		return col
	}
	return "created_at"
}

// decorate loads owner profiles and like counts for a page of videos.
// viewerID 0 means anonymous; isLiked stays false.
func (s *videoService) decorate(ctx context.Context, videos []dbmysql.Video, viewerID uint64) ([]VideoView, error) {
	ids := make([]uint64, 0, len(videos))
	ownerIDs := make([]uint64, 0, len(videos))
	seen := make(map[uint64]bool, len(videos))
	for i := range videos {
		ids = append(ids, videos[i].VideoID)
		if !seen[videos[i].OwnerID] {
			seen[videos[i].OwnerID] = true
			ownerIDs = append(ownerIDs, videos[i].OwnerID)
		}
	}

	owners, err := s.videoRepo.OwnersByID(ctx, ownerIDs)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	likes, err := s.videoRepo.LikeCounts(ctx, ids)
	if err != nil {
		return nil, common.AsApiError(err)
	}

	views := make([]VideoView, 0, len(videos))
	for i := range videos {
		view := VideoView{
			Video:      videos[i],
			Owner:      owners[videos[i].OwnerID],
			TotalLikes: likes[videos[i].VideoID],
		}
		if viewerID != 0 {
			liked, err := s.videoRepo.IsLikedBy(ctx, videos[i].VideoID, viewerID)
			if err != nil {
				return nil, common.AsApiError(err)
			}
			view.IsLiked = liked
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *videoService) PublishVideo(ctx context.Context, ownerID uint64, input PublishInput) (*VideoView, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" || input.Description == "" {
		return nil, common.BadRequest("title and description are required")
	}
	if input.VideoFile == nil || input.VideoInfo == nil {
		return nil, common.BadRequest("video file is required")
	}
	if input.Thumbnail == nil || input.ThumbInfo == nil {
		return nil, common.BadRequest("thumbnail is required")
	}

	videoUpload, err := s.uploader.SaveUpload(ctx, input.VideoFile, input.VideoInfo, ownerID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	thumbUpload, err := s.uploader.SaveUpload(ctx, input.Thumbnail, input.ThumbInfo, ownerID)
	if err != nil {
		s.removeBlob(ctx, videoUpload.URL)
		return nil, common.AsApiError(err)
	}

	video := &dbmysql.Video{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		VideoFile:   videoUpload.URL,
		Thumbnail:   thumbUpload.URL,
		Duration:    input.Duration,
		IsPublished: true,
	}
	if err := s.videoRepo.CreateVideo(ctx, video); err != nil {
		s.removeBlob(ctx, videoUpload.URL)
		s.removeBlob(ctx, thumbUpload.URL)
		return nil, common.AsApiError(err)
	}

	views, err := s.decorate(ctx, []dbmysql.Video{*video}, 0)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *videoService) GetVideoByID(ctx context.Context, videoID, viewerID uint64) (*VideoView, error) {
	video, err := s.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, common.AsApiError(err)
	}

	// counted only after the video is known to exist
	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, common.AsApiError(err)
	}
	video.Views++

	views, err := s.decorate(ctx, []dbmysql.Video{*video}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *videoService) UpdateVideo(ctx context.Context, ownerID, videoID uint64, input UpdateInput) (*dbmysql.Video, error) {
	video, err := s.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if err := common.AuthorizeOwner(ownerID, video.OwnerID, "video"); err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		video.Title = title
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		video.Description = description
	}

	oldThumbnail := ""
	if input.Thumbnail != nil && input.ThumbInfo != nil {
		upload, err := s.uploader.SaveUpload(ctx, input.Thumbnail, input.ThumbInfo, ownerID)
		if err != nil {
			return nil, common.AsApiError(err)
		}
		oldThumbnail = video.Thumbnail
		video.Thumbnail = upload.URL
	}

	if err := s.videoRepo.UpdateVideo(ctx, video); err != nil {
		if video.Thumbnail != oldThumbnail && oldThumbnail != "" {
			s.removeBlob(ctx, video.Thumbnail)
		}
		return nil, common.AsApiError(err)
	}
	if oldThumbnail != "" {
		s.removeBlob(ctx, oldThumbnail)
	}
	return video, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, ownerID, videoID uint64) error {
	video, err := s.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return common.AsApiError(err)
	}
	if err := common.AuthorizeOwner(ownerID, video.OwnerID, "video"); err != nil {
		return err
	}

	if err := s.videoRepo.DeleteVideo(ctx, videoID); err != nil {
		return common.AsApiError(err)
	}

	s.removeBlob(ctx, video.VideoFile)
	s.removeBlob(ctx, video.Thumbnail)
	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, ownerID, videoID uint64) (*dbmysql.Video, error) {
	video, err := s.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if err := common.AuthorizeOwner(ownerID, video.OwnerID, "video"); err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.UpdateVideo(ctx, video); err != nil {
		return nil, common.AsApiError(err)
	}
	return video, nil
}

// removeBlob is best effort; the row state is already settled.
func (s *videoService) removeBlob(ctx context.Context, fileURL string) {
	if fileURL == "" {
		return
	}
	if err := s.uploader.Remove(ctx, fileURL); err != nil {
		s.logger.Warn("failed to remove media blob", zap.String("url", fileURL), zap.Error(err))
	}
}
