package video

// DB-backed tests for the video store. They need a live MySQL; point
// MYSQL_TEST_DSN at a disposable database to run them.

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

func openTestDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, db.AutoMigrate(&dbmysql.Video{}))
	require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&dbmysql.Video{}).Error)
	return db
}

func TestVideoRepository_UpdateLeavesViewsAlone(t *testing.T) {
	db := openTestDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	v := &dbmysql.Video{
		OwnerID:     1,
		Title:       "first",
		VideoFile:   "/media/a",
		Thumbnail:   "/media/b",
		IsPublished: true,
	}
	require.NoError(t, repo.CreateVideo(ctx, v))

	stale, err := repo.GetVideoByID(ctx, v.VideoID)
	require.NoError(t, err)

	// a view lands between the read and the write-back
	require.NoError(t, repo.IncrementViews(ctx, v.VideoID))

	stale.Title = "second"
	require.NoError(t, repo.UpdateVideo(ctx, stale))

	fresh, err := repo.GetVideoByID(ctx, v.VideoID)
	require.NoError(t, err)
	require.Equal(t, "second", fresh.Title)
	require.EqualValues(t, 1, fresh.Views)
}

func TestVideoRepository_ListFiltersWildcardsLiterally(t *testing.T) {
	db := openTestDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	for _, title := range []string{"100% organic", "plain title"} {
		require.NoError(t, repo.CreateVideo(ctx, &dbmysql.Video{
			OwnerID:     1,
			Title:       title,
			VideoFile:   "/media/v",
			Thumbnail:   "/media/t",
			IsPublished: true,
		}))
	}

	videos, err := repo.ListVideos(ctx, ListFilter{
		Query:         "%",
		SortColumn:    "created_at",
		Limit:         10,
		OnlyPublished: true,
	})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.Equal(t, "100% organic", videos[0].Title)
}
