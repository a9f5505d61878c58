package dbmysql

import "time"

type Tweet struct {
	TweetID   uint64    `gorm:"primaryKey;column:tweet_id;autoIncrement" json:"tweet_id"`
	OwnerID   uint64    `gorm:"column:owner_id;index;not null" json:"owner_id"`
	Content   string    `gorm:"column:content;size:500;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
