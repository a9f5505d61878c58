package comment

import (
	"context"
	"strings"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
)

// CommentView pairs a comment with its author's public profile.
type CommentView struct {
	dbmysql.Comment
	Owner dbmysql.Profile `json:"owner"`
}

type CommentPage struct {
	Comments      []CommentView `json:"comments"`
	TotalComments int64         `json:"totalComments"`
	CurrentPage   int           `json:"currentPage"`
	TotalPages    int64         `json:"totalPages"`
}

type CommentService interface {
	ListComments(ctx context.Context, videoID uint64, pagination common.Pagination) (*CommentPage, error)
	AddComment(ctx context.Context, ownerID, videoID uint64, content string) (*dbmysql.Comment, error)
	UpdateComment(ctx context.Context, ownerID, commentID uint64, content string) (*dbmysql.Comment, error)
	DeleteComment(ctx context.Context, ownerID, commentID uint64) error
}

type commentService struct {
	commentRepo CommentRepository
}

func NewCommentService(commentRepo CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

// ListComments returns newest-first comments for an existing video. A
// missing video is a 404; a video with no comments is an empty page.
func (s *commentService) ListComments(ctx context.Context, videoID uint64, pagination common.Pagination) (*CommentPage, error) {
	exists, err := s.commentRepo.VideoExists(ctx, videoID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if !exists {
		return nil, common.NotFound("video not found")
	}

	comments, err := s.commentRepo.ListByVideo(ctx, videoID, pagination.Offset(), pagination.Limit)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	total, err := s.commentRepo.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, common.AsApiError(err)
	}

	ownerIDs := make([]uint64, 0, len(comments))
	seen := make(map[uint64]bool, len(comments))
	for i := range comments {
		if !seen[comments[i].OwnerID] {
			seen[comments[i].OwnerID] = true
			ownerIDs = append(ownerIDs, comments[i].OwnerID)
		}
	}
	owners, err := s.commentRepo.OwnersByID(ctx, ownerIDs)
	if err != nil {
		return nil, common.AsApiError(err)
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, CommentView{
			Comment: comments[i],
			Owner:   owners[comments[i].OwnerID],
		})
	}

	return &CommentPage{
		Comments:      views,
		TotalComments: total,
		CurrentPage:   pagination.Page,
		TotalPages:    common.TotalPages(total, pagination.Limit),
	}, nil
}

func (s *commentService) AddComment(ctx context.Context, ownerID, videoID uint64, content string) (*dbmysql.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.BadRequest("comment content is required")
	}

	exists, err := s.commentRepo.VideoExists(ctx, videoID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if !exists {
		return nil, common.NotFound("video not found")
	}

	comment := &dbmysql.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, common.AsApiError(err)
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, ownerID, commentID uint64, content string) (*dbmysql.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.BadRequest("comment content is required")
	}

	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if err := common.AuthorizeOwner(ownerID, comment.OwnerID, "comment"); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.UpdateComment(ctx, comment); err != nil {
		return nil, common.AsApiError(err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, ownerID, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return common.AsApiError(err)
	}
	if err := common.AuthorizeOwner(ownerID, comment.OwnerID, "comment"); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return common.AsApiError(err)
	}
	return nil
}
