package comment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) CreateComment(ctx context.Context, comment *dbmysql.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetCommentByID(ctx context.Context, commentID uint64) (*dbmysql.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dbmysql.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateComment(ctx context.Context, comment *dbmysql.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteComment(ctx context.Context, commentID uint64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByVideo(ctx context.Context, videoID uint64, offset, limit int) ([]dbmysql.Comment, error) {
	args := m.Called(ctx, videoID, offset, limit)
	return args.Get(0).([]dbmysql.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByVideo(ctx context.Context, videoID uint64) (int64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) VideoExists(ctx context.Context, videoID uint64) (bool, error) {
	args := m.Called(ctx, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) OwnersByID(ctx context.Context, ownerIDs []uint64) (map[uint64]dbmysql.Profile, error) {
	args := m.Called(ctx, ownerIDs)
	return args.Get(0).(map[uint64]dbmysql.Profile), args.Error(1)
}

func TestCommentService_ListComments(t *testing.T) {
	ctx := context.Background()

	t.Run("missing video is 404", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		repo.On("VideoExists", ctx, uint64(9)).Return(false, nil)

		_, err := svc.ListComments(ctx, 9, common.Pagination{Page: 1, Limit: 10})
		require.Error(t, err)
		require.Equal(t, 404, common.AsApiError(err).StatusCode)
	})

	t.Run("video with no comments is an empty page", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		repo.On("VideoExists", ctx, uint64(9)).Return(true, nil)
		repo.On("ListByVideo", ctx, uint64(9), 0, 10).Return([]dbmysql.Comment{}, nil)
		repo.On("CountByVideo", ctx, uint64(9)).Return(int64(0), nil)
		repo.On("OwnersByID", ctx, []uint64{}).Return(map[uint64]dbmysql.Profile{}, nil)

		page, err := svc.ListComments(ctx, 9, common.Pagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Empty(t, page.Comments)
		require.Equal(t, int64(0), page.TotalComments)
	})

	t.Run("joins owner profiles", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		repo.On("VideoExists", ctx, uint64(9)).Return(true, nil)
		repo.On("ListByVideo", ctx, uint64(9), 0, 10).Return([]dbmysql.Comment{
			{CommentID: 1, VideoID: 9, OwnerID: 3, Content: "nice"},
			{CommentID: 2, VideoID: 9, OwnerID: 3, Content: "very nice"},
		}, nil)
		repo.On("CountByVideo", ctx, uint64(9)).Return(int64(2), nil)
		repo.On("OwnersByID", ctx, []uint64{3}).Return(map[uint64]dbmysql.Profile{
			3: {UserID: 3, Username: "watcher"},
		}, nil)

		page, err := svc.ListComments(ctx, 9, common.Pagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Comments, 2)
		require.Equal(t, "watcher", page.Comments[0].Owner.Username)
		require.Equal(t, int64(1), page.TotalPages)
	})
}

func TestCommentService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		repo.On("VideoExists", ctx, uint64(9)).Return(true, nil)
		repo.On("CreateComment", ctx, mock.MatchedBy(func(c *dbmysql.Comment) bool {
			return c.VideoID == 9 && c.OwnerID == 3 && c.Content == "hello"
		})).Return(nil)

		comment, err := svc.AddComment(ctx, 3, 9, "  hello  ")
		require.NoError(t, err)
		require.Equal(t, "hello", comment.Content)
	})

	t.Run("blank content rejected", func(t *testing.T) {
		svc := NewCommentService(new(MockCommentRepository))

		_, err := svc.AddComment(ctx, 3, 9, "   ")
		require.Error(t, err)
		require.Equal(t, 400, common.AsApiError(err).StatusCode)
	})

	t.Run("missing video", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		repo.On("VideoExists", ctx, uint64(9)).Return(false, nil)

		_, err := svc.AddComment(ctx, 3, 9, "hello")
		require.Error(t, err)
		require.Equal(t, 404, common.AsApiError(err).StatusCode)
	})
}

func TestCommentService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	stored := func() *dbmysql.Comment {
		return &dbmysql.Comment{CommentID: 1, VideoID: 9, OwnerID: 3, Content: "old"}
	}

	t.Run("owner can update", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		repo.On("GetCommentByID", ctx, uint64(1)).Return(stored(), nil)
		repo.On("UpdateComment", ctx, mock.MatchedBy(func(c *dbmysql.Comment) bool {
			return c.Content == "new"
		})).Return(nil)

		comment, err := svc.UpdateComment(ctx, 3, 1, "new")
		require.NoError(t, err)
		require.Equal(t, "new", comment.Content)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		repo.On("GetCommentByID", ctx, uint64(1)).Return(stored(), nil)

		_, err := svc.UpdateComment(ctx, 99, 1, "hijack")
		require.Error(t, err)
		require.Equal(t, 403, common.AsApiError(err).StatusCode)
	})

	t.Run("delete missing comment", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		repo.On("GetCommentByID", ctx, uint64(404)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeleteComment(ctx, 3, 404)
		require.Error(t, err)
		require.Equal(t, 404, common.AsApiError(err).StatusCode)
	})

	t.Run("owner can delete", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		repo.On("GetCommentByID", ctx, uint64(1)).Return(stored(), nil)
		repo.On("DeleteComment", ctx, uint64(1)).Return(nil)

		require.NoError(t, svc.DeleteComment(ctx, 3, 1))
	})
}
