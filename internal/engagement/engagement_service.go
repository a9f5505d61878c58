package engagement

import (
	"context"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
)

// ToggleResult reports the state after a like toggle.
type ToggleResult struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"totalLikes"`
}

// SubscriptionResult reports the state after a subscription toggle.
type SubscriptionResult struct {
	Subscribed      bool  `json:"subscribed"`
	SubscriberCount int64 `json:"subscriberCount"`
}

type EngagementService interface {
	ToggleLike(ctx context.Context, userID uint64, target dbmysql.LikeTarget, targetID uint64) (*ToggleResult, error)
	ListLikedVideos(ctx context.Context, userID uint64) ([]dbmysql.Video, error)
	ToggleSubscription(ctx context.Context, subscriberID, channelID uint64) (*SubscriptionResult, error)
	ListChannelSubscribers(ctx context.Context, channelID uint64) ([]dbmysql.Profile, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uint64) ([]dbmysql.Profile, error)
}

type engagementService struct {
	likeRepo LikeRepository
	subRepo  SubscriptionRepository
}

func NewEngagementService(likeRepo LikeRepository, subRepo SubscriptionRepository) EngagementService {
	return &engagementService{likeRepo: likeRepo, subRepo: subRepo}
}

// ToggleLike verifies the target row exists before flipping, for every
// target kind alike.
func (s *engagementService) ToggleLike(ctx context.Context, userID uint64, target dbmysql.LikeTarget, targetID uint64) (*ToggleResult, error) {
	if !target.Valid() {
		return nil, common.BadRequest("invalid like target")
	}

	exists, err := s.likeRepo.TargetExists(ctx, target, targetID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if !exists {
		return nil, common.NotFound(string(target)+" not found")
	}

	liked, err := s.likeRepo.ToggleLike(ctx, userID, target, targetID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	total, err := s.likeRepo.CountLikes(ctx, target, targetID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	return &ToggleResult{Liked: liked, TotalLikes: total}, nil
}

func (s *engagementService) ListLikedVideos(ctx context.Context, userID uint64) ([]dbmysql.Video, error) {
	videos, err := s.likeRepo.ListLikedVideos(ctx, userID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	return videos, nil
}

func (s *engagementService) ToggleSubscription(ctx context.Context, subscriberID, channelID uint64) (*SubscriptionResult, error) {
	if subscriberID == channelID {
		return nil, common.BadRequest("cannot subscribe to your own channel")
	}

	exists, err := s.subRepo.ChannelExists(ctx, channelID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if !exists {
		return nil, common.NotFound("channel not found")
	}

	subscribed, err := s.subRepo.ToggleSubscription(ctx, subscriberID, channelID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	count, err := s.subRepo.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	return &SubscriptionResult{Subscribed: subscribed, SubscriberCount: count}, nil
}

func (s *engagementService) ListChannelSubscribers(ctx context.Context, channelID uint64) ([]dbmysql.Profile, error) {
	exists, err := s.subRepo.ChannelExists(ctx, channelID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if !exists {
		return nil, common.NotFound("channel not found")
	}

	subscribers, err := s.subRepo.ListChannelSubscribers(ctx, channelID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	return subscribers, nil
}

func (s *engagementService) ListSubscribedChannels(ctx context.Context, subscriberID uint64) ([]dbmysql.Profile, error) {
	channels, err := s.subRepo.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	return channels, nil
}
