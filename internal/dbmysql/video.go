package dbmysql

import "time"

type Video struct {
	VideoID     uint64    `gorm:"primaryKey;column:video_id;autoIncrement" json:"video_id"`
	OwnerID     uint64    `gorm:"column:owner_id;index;not null" json:"owner_id"`
	Title       string    `gorm:"column:title;size:255;not null;index" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	VideoFile   string    `gorm:"column:video_file;size:512;not null" json:"video_file"`
	Thumbnail   string    `gorm:"column:thumbnail;size:512;not null" json:"thumbnail"`
	Duration    float64   `gorm:"column:duration;default:0" json:"duration"`
	Views       uint64    `gorm:"column:views;default:0" json:"views"`
	IsPublished bool      `gorm:"column:is_published;default:true" json:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
