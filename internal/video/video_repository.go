package video

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"vidtube/internal/dbmysql"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards so user input always matches
// literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ListFilter is the normalized feed query: page window, optional title
// substring, optional owner, sort column + direction.
type ListFilter struct {
	Query         string
	OwnerID       uint64
	SortColumn    string // whitelisted column name
	SortDesc      bool
	Offset        int
	Limit         int
	OnlyPublished bool
}

type VideoRepository interface {
	CreateVideo(ctx context.Context, video *dbmysql.Video) error
	GetVideoByID(ctx context.Context, videoID uint64) (*dbmysql.Video, error)
	UpdateVideo(ctx context.Context, video *dbmysql.Video) error
	DeleteVideo(ctx context.Context, videoID uint64) error
	IncrementViews(ctx context.Context, videoID uint64) error
	ListVideos(ctx context.Context, filter ListFilter) ([]dbmysql.Video, error)
	CountVideos(ctx context.Context, filter ListFilter) (int64, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]dbmysql.Video, error)
	OwnersByID(ctx context.Context, ownerIDs []uint64) (map[uint64]dbmysql.Profile, error)
	LikeCounts(ctx context.Context, videoIDs []uint64) (map[uint64]int64, error)
	IsLikedBy(ctx context.Context, videoID, userID uint64) (bool, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) CreateVideo(ctx context.Context, video *dbmysql.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetVideoByID(ctx context.Context, videoID uint64) (*dbmysql.Video, error) {
	var video dbmysql.Video
	err := r.db.WithContext(ctx).Where("video_id = ?", videoID).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// UpdateVideo writes only the caller-editable columns, so a view increment
// landing between the read and this write is never clobbered.
func (r *videoRepository) UpdateVideo(ctx context.Context, video *dbmysql.Video) error {
	return r.db.WithContext(ctx).Model(video).
		Select("title", "description", "thumbnail", "is_published").
		Updates(video).Error
}

// DeleteVideo removes the video row together with its comments and every
// like pointing at the video or its comments, in one transaction.
func (r *videoRepository) DeleteVideo(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint64
		if err := tx.Model(&dbmysql.Comment{}).
			Where("video_id = ?", videoID).
			Pluck("comment_id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?",
				dbmysql.LikeTargetComment, commentIDs).
				Delete(&dbmysql.Like{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("target_type = ? AND target_id = ?",
			dbmysql.LikeTargetVideo, videoID).
			Delete(&dbmysql.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", videoID).
			Delete(&dbmysql.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", videoID).
			Delete(&dbmysql.PlaylistVideo{}).Error; err != nil {
			return err
		}

		return tx.Where("video_id = ?", videoID).Delete(&dbmysql.Video{}).Error
	})
}

func (r *videoRepository) IncrementViews(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Model(&dbmysql.Video{}).
		Where("video_id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *videoRepository) ListVideos(ctx context.Context, filter ListFilter) ([]dbmysql.Video, error) {
	var videos []dbmysql.Video

	q := r.applyFilter(r.db.WithContext(ctx).Model(&dbmysql.Video{}), filter)

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	// stable ordering: requested column first, creation time breaks ties
	order := fmt.Sprintf("%s %s", filter.SortColumn, direction)
	if filter.SortColumn != "created_at" {
		order += ", created_at DESC"
	}

	err := q.Order(order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&videos).Error
	return videos, err
}

// CountVideos runs an independent count with the same predicate the page
// query uses.
func (r *videoRepository) CountVideos(ctx context.Context, filter ListFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&dbmysql.Video{}), filter).
		Count(&count).Error
	return count, err
}

func (r *videoRepository) applyFilter(q *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.OnlyPublished {
		q = q.Where("is_published = ?", true)
	}
	if filter.Query != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+escapeLike(filter.Query)+"%")
	}
	if filter.OwnerID != 0 {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	return q
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]dbmysql.Video, error) {
	var videos []dbmysql.Video
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) OwnersByID(ctx context.Context, ownerIDs []uint64) (map[uint64]dbmysql.Profile, error) {
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

func (r *videoRepository) LikeCounts(ctx context.Context, videoIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return counts, nil
	}

	type row struct {
		TargetID uint64
		Total    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Select("target_id, COUNT(*) AS total").
		Where("target_type = ? AND target_id IN ?", dbmysql.LikeTargetVideo, videoIDs).
		Group("target_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.TargetID] = r.Total
	}
	return counts, nil
}

func (r *videoRepository) IsLikedBy(ctx context.Context, videoID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Where("target_type = ? AND target_id = ? AND user_id = ?",
			dbmysql.LikeTargetVideo, videoID, userID).
		Count(&count).Error
	return count > 0, err
}
