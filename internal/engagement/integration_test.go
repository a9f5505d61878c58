package engagement

// DB-backed tests for the toggle repositories. They need a live MySQL;
// point MYSQL_TEST_DSN at a disposable database to run them, e.g.
//
//	MYSQL_TEST_DSN='root:root@tcp(localhost:3306)/vidtube_test?parseTime=true'

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vidtube/internal/dbmysql"
)

func openTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models...))
	for _, m := range models {
		require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error)
	}
	return db
}

func TestLikeRepository_ToggleFlip(t *testing.T) {
	db := openTestDB(t, &dbmysql.Like{})
	repo := NewLikeRepository(db)
	ctx := context.Background()

	liked, err := repo.ToggleLike(ctx, 1, dbmysql.LikeTargetVideo, 10)
	require.NoError(t, err)
	require.True(t, liked)

	count, err := repo.CountLikes(ctx, dbmysql.LikeTargetVideo, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	isLiked, err := repo.IsLiked(ctx, 1, dbmysql.LikeTargetVideo, 10)
	require.NoError(t, err)
	require.True(t, isLiked)

	// second toggle flips back off and leaves no row behind
	liked, err = repo.ToggleLike(ctx, 1, dbmysql.LikeTargetVideo, 10)
	require.NoError(t, err)
	require.False(t, liked)

	count, err = repo.CountLikes(ctx, dbmysql.LikeTargetVideo, 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestLikeRepository_AtMostOneRowPerPair(t *testing.T) {
	db := openTestDB(t, &dbmysql.Like{})
	repo := NewLikeRepository(db)
	ctx := context.Background()

	_, err := repo.ToggleLike(ctx, 7, dbmysql.LikeTargetComment, 3)
	require.NoError(t, err)

	// a raw duplicate insert loses at the store, not in application code
	dup := dbmysql.Like{UserID: 7, TargetType: dbmysql.LikeTargetComment, TargetID: 3}
	require.ErrorIs(t, db.Create(&dup).Error, gorm.ErrDuplicatedKey)

	var rows int64
	require.NoError(t, db.Model(&dbmysql.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?",
			7, dbmysql.LikeTargetComment, 3).
		Count(&rows).Error)
	require.EqualValues(t, 1, rows)
}

func TestLikeRepository_KindsAreIndependent(t *testing.T) {
	db := openTestDB(t, &dbmysql.Like{})
	repo := NewLikeRepository(db)
	ctx := context.Background()

	// same (user, id) under different kinds is two separate likes
	_, err := repo.ToggleLike(ctx, 1, dbmysql.LikeTargetVideo, 5)
	require.NoError(t, err)
	_, err = repo.ToggleLike(ctx, 1, dbmysql.LikeTargetTweet, 5)
	require.NoError(t, err)

	count, err := repo.CountLikes(ctx, dbmysql.LikeTargetVideo, 5)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	count, err = repo.CountLikes(ctx, dbmysql.LikeTargetTweet, 5)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestSubscriptionRepository_ToggleFlip(t *testing.T) {
	db := openTestDB(t, &dbmysql.Subscription{})
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	subscribed, err := repo.ToggleSubscription(ctx, 2, 9)
	require.NoError(t, err)
	require.True(t, subscribed)

	count, err := repo.CountSubscribers(ctx, 9)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	isSubscribed, err := repo.IsSubscribed(ctx, 2, 9)
	require.NoError(t, err)
	require.True(t, isSubscribed)

	subscribed, err = repo.ToggleSubscription(ctx, 2, 9)
	require.NoError(t, err)
	require.False(t, subscribed)

	count, err = repo.CountSubscribers(ctx, 9)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestSubscriptionRepository_AtMostOneRowPerPair(t *testing.T) {
	db := openTestDB(t, &dbmysql.Subscription{})
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	_, err := repo.ToggleSubscription(ctx, 2, 9)
	require.NoError(t, err)

	dup := dbmysql.Subscription{SubscriberID: 2, ChannelID: 9}
	require.ErrorIs(t, db.Create(&dup).Error, gorm.ErrDuplicatedKey)

	var rows int64
	require.NoError(t, db.Model(&dbmysql.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", 2, 9).
		Count(&rows).Error)
	require.EqualValues(t, 1, rows)
}
