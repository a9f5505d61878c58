package comment

import (
	"context"

	"gorm.io/gorm"

	"vidtube/internal/dbmysql"
)

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *dbmysql.Comment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*dbmysql.Comment, error)
	UpdateComment(ctx context.Context, comment *dbmysql.Comment) error
	DeleteComment(ctx context.Context, commentID uint64) error
	ListByVideo(ctx context.Context, videoID uint64, offset, limit int) ([]dbmysql.Comment, error)
	CountByVideo(ctx context.Context, videoID uint64) (int64, error)
	VideoExists(ctx context.Context, videoID uint64) (bool, error)
	OwnersByID(ctx context.Context, ownerIDs []uint64) (map[uint64]dbmysql.Profile, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetCommentByID(ctx context.Context, commentID uint64) (*dbmysql.Comment, error) {
	var comment dbmysql.Comment
	err := r.db.WithContext(ctx).Where("comment_id = ?", commentID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) UpdateComment(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// DeleteComment removes the comment and its likes together.
func (r *commentRepository) DeleteComment(ctx context.Context, commentID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?",
			dbmysql.LikeTargetComment, commentID).
			Delete(&dbmysql.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("comment_id = ?", commentID).Delete(&dbmysql.Comment{}).Error
	})
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uint64, offset, limit int) ([]dbmysql.Comment, error) {
	var comments []dbmysql.Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountByVideo(ctx context.Context, videoID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Comment{}).
		Where("video_id = ?", videoID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) VideoExists(ctx context.Context, videoID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Video{}).
		Where("video_id = ?", videoID).
		Count(&count).Error
	return count > 0, err
}

func (r *commentRepository) OwnersByID(ctx context.Context, ownerIDs []uint64) (map[uint64]dbmysql.Profile, error) {
	owners := make(map[uint64]dbmysql.Profile, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return owners, nil
	}

	var users []dbmysql.User
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", ownerIDs).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	for i := range users {
		owners[users[i].UserID] = users[i].Profile()
	}
	return owners, nil
}
