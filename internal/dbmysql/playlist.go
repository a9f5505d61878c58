package dbmysql

import "time"

// Playlist names are unique per owner, enforced by the composite index so a
// concurrent double-create surfaces as a duplicate-key conflict.
type Playlist struct {
	PlaylistID  uint64    `gorm:"primaryKey;column:playlist_id;autoIncrement" json:"playlist_id"`
	OwnerID     uint64    `gorm:"column:owner_id;not null;uniqueIndex:idx_playlist_owner_name" json:"owner_id"`
	Name        string    `gorm:"column:name;size:120;not null;uniqueIndex:idx_playlist_owner_name" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// PlaylistVideo is the ordered membership row. Two unique indexes back the
// membership rules: a video appears at most once per playlist, and a position
// holds at most one video.
type PlaylistVideo struct {
	ID         uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	PlaylistID uint64    `gorm:"column:playlist_id;not null;uniqueIndex:idx_playlist_video;uniqueIndex:idx_playlist_slot" json:"playlist_id"`
	VideoID    uint64    `gorm:"column:video_id;not null;uniqueIndex:idx_playlist_video" json:"video_id"`
	Position   int       `gorm:"column:position;not null;uniqueIndex:idx_playlist_slot" json:"position"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
