package dbmysql

import "time"

// LikeTarget is the discriminant of the polymorphic like relation. A like
// points at exactly one of video, comment or tweet.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like is one engagement row per (user, target). The composite unique index
// is what makes the toggle race-free: a concurrent double-insert loses at
// the store, not in application code.
type Like struct {
	LikeID     uint64     `gorm:"primaryKey;column:like_id;autoIncrement" json:"like_id"`
	UserID     uint64     `gorm:"column:user_id;not null;uniqueIndex:idx_like_user_target" json:"user_id"`
	TargetType LikeTarget `gorm:"column:target_type;size:10;not null;uniqueIndex:idx_like_user_target" json:"target_type"`
	TargetID   uint64     `gorm:"column:target_id;not null;uniqueIndex:idx_like_user_target;index:idx_like_target" json:"target_id"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
