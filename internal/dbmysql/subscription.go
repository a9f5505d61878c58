package dbmysql

import "time"

// Subscription links a subscriber to a channel (a user in its publisher
// capacity). At most one row per pair, held by the unique index.
type Subscription struct {
	SubscriptionID uint64    `gorm:"primaryKey;column:subscription_id;autoIncrement" json:"subscription_id"`
	SubscriberID   uint64    `gorm:"column:subscriber_id;not null;uniqueIndex:idx_sub_pair" json:"subscriber_id"`
	ChannelID      uint64    `gorm:"column:channel_id;not null;uniqueIndex:idx_sub_pair;index:idx_sub_channel" json:"channel_id"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
