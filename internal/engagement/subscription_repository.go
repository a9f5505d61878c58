package engagement

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vidtube/internal/dbmysql"
)

type SubscriptionRepository interface {
	// ToggleSubscription flips the relation and reports whether the
	// caller is subscribed afterwards.
	ToggleSubscription(ctx context.Context, subscriberID, channelID uint64) (subscribed bool, err error)
	CountSubscribers(ctx context.Context, channelID uint64) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID uint64) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID uint64) (bool, error)
	ListChannelSubscribers(ctx context.Context, channelID uint64) ([]dbmysql.Profile, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uint64) ([]dbmysql.Profile, error)
	ChannelExists(ctx context.Context, channelID uint64) (bool, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// ToggleSubscription mirrors the like toggle: insert through the unique
// (subscriber, channel) index, and treat a skipped insert as unsubscribe.
func (r *subscriptionRepository) ToggleSubscription(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	sub := dbmysql.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&sub)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&dbmysql.Subscription{}).Error
	return false, err
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) ListChannelSubscribers(ctx context.Context, channelID uint64) ([]dbmysql.Profile, error) {
	var users []dbmysql.User
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.user_id").
		Where("subscriptions.channel_id = ?", channelID).
		Order("subscriptions.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return profiles(users), nil
}

func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uint64) ([]dbmysql.Profile, error) {
	var users []dbmysql.User
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.user_id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return profiles(users), nil
}

func (r *subscriptionRepository) ChannelExists(ctx context.Context, channelID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("user_id = ?", channelID).
		Count(&count).Error
	return count > 0, err
}

func profiles(users []dbmysql.User) []dbmysql.Profile {
	out := make([]dbmysql.Profile, 0, len(users))
	for i := range users {
		out = append(out, users[i].Profile())
	}
	return out
}
