package tweet

import (
	"context"

	"gorm.io/gorm"

	"vidtube/internal/dbmysql"
)

type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *dbmysql.Tweet) error
	GetTweetByID(ctx context.Context, tweetID uint64) (*dbmysql.Tweet, error)
	UpdateTweet(ctx context.Context, tweet *dbmysql.Tweet) error
	DeleteTweet(ctx context.Context, tweetID uint64) error
	ListByOwner(ctx context.Context, ownerID uint64, offset, limit int) ([]dbmysql.Tweet, error)
	CountByOwner(ctx context.Context, ownerID uint64) (int64, error)
	UserExists(ctx context.Context, userID uint64) (bool, error)
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) CreateTweet(ctx context.Context, tweet *dbmysql.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) GetTweetByID(ctx context.Context, tweetID uint64) (*dbmysql.Tweet, error) {
	var tweet dbmysql.Tweet
	err := r.db.WithContext(ctx).Where("tweet_id = ?", tweetID).First(&tweet).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) UpdateTweet(ctx context.Context, tweet *dbmysql.Tweet) error {
	return r.db.WithContext(ctx).Save(tweet).Error
}

// DeleteTweet removes the tweet and any likes pointing at it.
func (r *tweetRepository) DeleteTweet(ctx context.Context, tweetID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?",
			dbmysql.LikeTargetTweet, tweetID).
			Delete(&dbmysql.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("tweet_id = ?", tweetID).Delete(&dbmysql.Tweet{}).Error
	})
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uint64, offset, limit int) ([]dbmysql.Tweet, error) {
	var tweets []dbmysql.Tweet
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error
	return tweets, err
}

func (r *tweetRepository) CountByOwner(ctx context.Context, ownerID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Tweet{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *tweetRepository) UserExists(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
