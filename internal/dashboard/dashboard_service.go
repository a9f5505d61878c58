package dashboard

import (
	"context"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
)

type DashboardService interface {
	GetChannelStats(ctx context.Context, channelID uint64) (*ChannelStats, error)
	GetChannelVideos(ctx context.Context, channelID uint64) ([]dbmysql.Video, error)
}

type dashboardService struct {
	dashRepo DashboardRepository
}

func NewDashboardService(dashRepo DashboardRepository) DashboardService {
	return &dashboardService{dashRepo: dashRepo}
}

func (s *dashboardService) GetChannelStats(ctx context.Context, channelID uint64) (*ChannelStats, error) {
	stats, err := s.dashRepo.GetChannelStats(ctx, channelID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	return stats, nil
}

// GetChannelVideos returns the owner's full catalog, drafts included.
func (s *dashboardService) GetChannelVideos(ctx context.Context, channelID uint64) ([]dbmysql.Video, error) {
	videos, err := s.dashRepo.ListChannelVideos(ctx, channelID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	return videos, nil
}
