package engagement

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vidtube/internal/dbmysql"
)

type LikeRepository interface {
	// ToggleLike flips the like state and reports the resulting state.
	ToggleLike(ctx context.Context, userID uint64, target dbmysql.LikeTarget, targetID uint64) (liked bool, err error)
	CountLikes(ctx context.Context, target dbmysql.LikeTarget, targetID uint64) (int64, error)
	IsLiked(ctx context.Context, userID uint64, target dbmysql.LikeTarget, targetID uint64) (bool, error)
	ListLikedVideos(ctx context.Context, userID uint64) ([]dbmysql.Video, error)
	TargetExists(ctx context.Context, target dbmysql.LikeTarget, targetID uint64) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// ToggleLike relies on the unique (user, target_type, target_id) index:
// the insert is attempted first with conflicts ignored, and a no-op
// insert means the like already existed and must be removed. Concurrent
// toggles therefore never produce duplicate rows.
func (r *likeRepository) ToggleLike(ctx context.Context, userID uint64, target dbmysql.LikeTarget, targetID uint64) (bool, error) {
	like := dbmysql.Like{
		UserID:     userID,
		TargetType: target,
		TargetID:   targetID,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
		Delete(&dbmysql.Like{}).Error
	return false, err
}

func (r *likeRepository) CountLikes(ctx context.Context, target dbmysql.LikeTarget, targetID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Where("target_type = ? AND target_id = ?", target, targetID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) IsLiked(ctx context.Context, userID uint64, target dbmysql.LikeTarget, targetID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) ListLikedVideos(ctx context.Context, userID uint64) ([]dbmysql.Video, error) {
	var videos []dbmysql.Video
	err := r.db.WithContext(ctx).Model(&dbmysql.Video{}).
		Joins("JOIN likes ON likes.target_id = videos.video_id AND likes.target_type = ?",
			dbmysql.LikeTargetVideo).
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&videos).Error
	return videos, err
}

func (r *likeRepository) TargetExists(ctx context.Context, target dbmysql.LikeTarget, targetID uint64) (bool, error) {
	var (
		count int64
		err   error
	)
	q := r.db.WithContext(ctx)
	switch target {
	case dbmysql.LikeTargetVideo:
		err = q.Model(&dbmysql.Video{}).Where("video_id = ?", targetID).Count(&count).Error
	case dbmysql.LikeTargetComment:
		err = q.Model(&dbmysql.Comment{}).Where("comment_id = ?", targetID).Count(&count).Error
	case dbmysql.LikeTargetTweet:
		err = q.Model(&dbmysql.Tweet{}).Where("tweet_id = ?", targetID).Count(&count).Error
	default:
		return false, nil
	}
	return count > 0, err
}
