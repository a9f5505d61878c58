package video

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
	"vidtube/internal/media"
)

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) CreateVideo(ctx context.Context, video *dbmysql.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) GetVideoByID(ctx context.Context, videoID uint64) (*dbmysql.Video, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dbmysql.Video), args.Error(1)
}

func (m *MockVideoRepository) UpdateVideo(ctx context.Context, video *dbmysql.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) DeleteVideo(ctx context.Context, videoID uint64) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

func (m *MockVideoRepository) IncrementViews(ctx context.Context, videoID uint64) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

func (m *MockVideoRepository) ListVideos(ctx context.Context, filter ListFilter) ([]dbmysql.Video, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]dbmysql.Video), args.Error(1)
}

func (m *MockVideoRepository) CountVideos(ctx context.Context, filter ListFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVideoRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]dbmysql.Video, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]dbmysql.Video), args.Error(1)
}

func (m *MockVideoRepository) OwnersByID(ctx context.Context, ownerIDs []uint64) (map[uint64]dbmysql.Profile, error) {
	args := m.Called(ctx, ownerIDs)
	return args.Get(0).(map[uint64]dbmysql.Profile), args.Error(1)
}

func (m *MockVideoRepository) LikeCounts(ctx context.Context, videoIDs []uint64) (map[uint64]int64, error) {
	args := m.Called(ctx, videoIDs)
	return args.Get(0).(map[uint64]int64), args.Error(1)
}

func (m *MockVideoRepository) IsLikedBy(ctx context.Context, videoID, userID uint64) (bool, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Bool(0), args.Error(1)
}

type stubUploader struct {
	saveErr error
	removed []string
}

func (s *stubUploader) SaveUpload(_ context.Context, _ multipart.File, header *multipart.FileHeader, _ uint64) (*media.UploadResult, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return &media.UploadResult{FileID: header.Filename, URL: "/media/" + header.Filename}, nil
}

func (s *stubUploader) Remove(_ context.Context, fileURL string) error {
	s.removed = append(s.removed, fileURL)
	return nil
}

type stubFile struct{ multipart.File }

func TestVideoService_ListVideos(t *testing.T) {
	ctx := context.Background()

	t.Run("decorates and paginates", func(t *testing.T) {
		repo := new(MockVideoRepository)
		svc := NewVideoService(repo, &stubUploader{}, zap.NewNop())

		page1 := []dbmysql.Video{
			{VideoID: 1, OwnerID: 7, Title: "first"},
			{VideoID: 2, OwnerID: 7, Title: "second"},
		}
		repo.On("ListVideos", ctx, mock.MatchedBy(func(f ListFilter) bool {
			return f.OnlyPublished && f.SortColumn == "views" && f.SortDesc && f.Offset == 10 && f.Limit == 10
		})).Return(page1, nil)
		repo.On("CountVideos", ctx, mock.Anything).Return(int64(25), nil)
		repo.On("OwnersByID", ctx, []uint64{7}).Return(map[uint64]dbmysql.Profile{
			7: {UserID: 7, Username: "creator"},
		}, nil)
		repo.On("LikeCounts", ctx, []uint64{1, 2}).Return(map[uint64]int64{1: 3}, nil)

		page, err := svc.ListVideos(ctx, ListOptions{
			Pagination: common.Pagination{Page: 2, Limit: 10},
			SortBy:     "views",
			SortType:   "desc",
		})
		require.NoError(t, err)
		require.Len(t, page.Videos, 2)
		require.Equal(t, int64(25), page.TotalVideos)
		require.Equal(t, 2, page.CurrentPage)
		require.Equal(t, int64(3), page.TotalPages)
		require.Equal(t, "creator", page.Videos[0].Owner.Username)
		require.Equal(t, int64(3), page.Videos[0].TotalLikes)
		require.Equal(t, int64(0), page.Videos[1].TotalLikes)
	})

	t.Run("unknown sort key falls back to created_at", func(t *testing.T) {
		repo := new(MockVideoRepository)
		svc := NewVideoService(repo, &stubUploader{}, zap.NewNop())

		repo.On("ListVideos", ctx, mock.MatchedBy(func(f ListFilter) bool {
			return f.SortColumn == "created_at"
		})).Return([]dbmysql.Video{}, nil)
		repo.On("CountVideos", ctx, mock.Anything).Return(int64(0), nil)
		repo.On("OwnersByID", ctx, []uint64{}).Return(map[uint64]dbmysql.Profile{}, nil)
		repo.On("LikeCounts", ctx, []uint64{}).Return(map[uint64]int64{}, nil)

		page, err := svc.ListVideos(ctx, ListOptions{
			Pagination: common.Pagination{Page: 1, Limit: 10},
			SortBy:     "owner_id; DROP TABLE videos",
		})
		require.NoError(t, err)
		require.Empty(t, page.Videos)
		require.Equal(t, int64(0), page.TotalPages)
	})
}

func TestVideoService_GetVideoByID(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps views and reports like state", func(t *testing.T) {
		repo := new(MockVideoRepository)
		svc := NewVideoService(repo, &stubUploader{}, zap.NewNop())

		stored := &dbmysql.Video{VideoID: 1, OwnerID: 7, Title: "clip", Views: 9}
		repo.On("GetVideoByID", ctx, uint64(1)).Return(stored, nil)
		repo.On("IncrementViews", ctx, uint64(1)).Return(nil)
		repo.On("OwnersByID", ctx, []uint64{7}).Return(map[uint64]dbmysql.Profile{7: {UserID: 7}}, nil)
		repo.On("LikeCounts", ctx, []uint64{1}).Return(map[uint64]int64{1: 2}, nil)
		repo.On("IsLikedBy", ctx, uint64(1), uint64(5)).Return(true, nil)

		view, err := svc.GetVideoByID(ctx, 1, 5)
		require.NoError(t, err)
		require.Equal(t, uint64(10), view.Views)
		require.True(t, view.IsLiked)
		require.Equal(t, int64(2), view.TotalLikes)
	})

	t.Run("missing video does not count a view", func(t *testing.T) {
		repo := new(MockVideoRepository)
		svc := NewVideoService(repo, &stubUploader{}, zap.NewNop())

		repo.On("GetVideoByID", ctx, uint64(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetVideoByID(ctx, 404, 0)
		require.Error(t, err)
		require.Equal(t, 404, common.AsApiError(err).StatusCode)
		repo.AssertNotCalled(t, "IncrementViews", ctx, uint64(404))
	})
}

func TestVideoService_PublishVideo(t *testing.T) {
	ctx := context.Background()

	input := func() PublishInput {
		return PublishInput{
			Title:       "my clip",
			Description: "about things",
			Duration:    12.5,
			VideoFile:   stubFile{},
			VideoInfo:   &multipart.FileHeader{Filename: "clip.mp4"},
			Thumbnail:   stubFile{},
			ThumbInfo:   &multipart.FileHeader{Filename: "thumb.png"},
		}
	}

	t.Run("success", func(t *testing.T) {
		repo := new(MockVideoRepository)
		svc := NewVideoService(repo, &stubUploader{}, zap.NewNop())

		repo.On("CreateVideo", ctx, mock.MatchedBy(func(v *dbmysql.Video) bool {
			return v.Title == "my clip" && v.IsPublished && v.VideoFile == "/media/clip.mp4"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*dbmysql.Video).VideoID = 42
		}).Return(nil)
		repo.On("OwnersByID", ctx, []uint64{7}).Return(map[uint64]dbmysql.Profile{7: {UserID: 7}}, nil)
		repo.On("LikeCounts", ctx, []uint64{42}).Return(map[uint64]int64{}, nil)

		view, err := svc.PublishVideo(ctx, 7, input())
		require.NoError(t, err)
		require.Equal(t, uint64(42), view.VideoID)
		require.Equal(t, "/media/thumb.png", view.Thumbnail)
	})

	t.Run("missing files rejected", func(t *testing.T) {
		svc := NewVideoService(new(MockVideoRepository), &stubUploader{}, zap.NewNop())

		in := input()
		in.VideoFile = nil
		in.VideoInfo = nil
		_, err := svc.PublishVideo(ctx, 7, in)
		require.Error(t, err)
		require.Equal(t, 400, common.AsApiError(err).StatusCode)
	})

	t.Run("create failure removes both blobs", func(t *testing.T) {
		repo := new(MockVideoRepository)
		uploader := &stubUploader{}
		svc := NewVideoService(repo, uploader, zap.NewNop())

		repo.On("CreateVideo", ctx, mock.Anything).Return(errors.New("insert failed"))

		_, err := svc.PublishVideo(ctx, 7, input())
		require.Error(t, err)
		require.ElementsMatch(t, []string{"/media/clip.mp4", "/media/thumb.png"}, uploader.removed)
	})
}

func TestVideoService_OwnershipGuards(t *testing.T) {
	ctx := context.Background()
	stored := func() *dbmysql.Video {
		return &dbmysql.Video{VideoID: 1, OwnerID: 7, Title: "clip", VideoFile: "/media/v", Thumbnail: "/media/t"}
	}

	t.Run("update by stranger forbidden", func(t *testing.T) {
		repo := new(MockVideoRepository)
		svc := NewVideoService(repo, &stubUploader{}, zap.NewNop())

		repo.On("GetVideoByID", ctx, uint64(1)).Return(stored(), nil)

		_, err := svc.UpdateVideo(ctx, 99, 1, UpdateInput{Title: "hijacked"})
		require.Error(t, err)
		require.Equal(t, 403, common.AsApiError(err).StatusCode)
	})

	t.Run("delete removes row and blobs", func(t *testing.T) {
		repo := new(MockVideoRepository)
		uploader := &stubUploader{}
		svc := NewVideoService(repo, uploader, zap.NewNop())

		repo.On("GetVideoByID", ctx, uint64(1)).Return(stored(), nil)
		repo.On("DeleteVideo", ctx, uint64(1)).Return(nil)

		require.NoError(t, svc.DeleteVideo(ctx, 7, 1))
		require.ElementsMatch(t, []string{"/media/v", "/media/t"}, uploader.removed)
	})

	t.Run("toggle publish flips the flag", func(t *testing.T) {
		repo := new(MockVideoRepository)
		svc := NewVideoService(repo, &stubUploader{}, zap.NewNop())

		video := stored()
		video.IsPublished = true
		repo.On("GetVideoByID", ctx, uint64(1)).Return(video, nil)
		repo.On("UpdateVideo", ctx, mock.MatchedBy(func(v *dbmysql.Video) bool {
			return !v.IsPublished
		})).Return(nil)

		updated, err := svc.TogglePublish(ctx, 7, 1)
		require.NoError(t, err)
		require.False(t, updated.IsPublished)
	})
}
