package dashboard

import (
	"context"

	"gorm.io/gorm"

	"vidtube/internal/dbmysql"
)

// ChannelStats is the aggregate rollup for a channel owner.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

type DashboardRepository interface {
	GetChannelStats(ctx context.Context, channelID uint64) (*ChannelStats, error)
	ListChannelVideos(ctx context.Context, channelID uint64) ([]dbmysql.Video, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// GetChannelStats aggregates over the owner's entire catalog, published
// or not. A channel with no videos reports zeros.
func (r *dashboardRepository) GetChannelStats(ctx context.Context, channelID uint64) (*ChannelStats, error) {
	stats := &ChannelStats{}

	type videoAgg struct {
		TotalVideos int64
		TotalViews  int64
	}
	var agg videoAgg
	err := r.db.WithContext(ctx).Model(&dbmysql.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", channelID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	stats.TotalVideos = agg.TotalVideos
	stats.TotalViews = agg.TotalViews

	err = r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Joins("JOIN videos ON videos.video_id = likes.target_id").
		Where("likes.target_type = ? AND videos.owner_id = ?", dbmysql.LikeTargetVideo, channelID).
		Count(&stats.TotalLikes).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&dbmysql.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&stats.TotalSubscribers).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *dashboardRepository) ListChannelVideos(ctx context.Context, channelID uint64) ([]dbmysql.Video, error) {
	var videos []dbmysql.Video
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", channelID).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}
