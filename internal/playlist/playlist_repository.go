package playlist

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vidtube/internal/dbmysql"
)

type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *dbmysql.Playlist) error
	GetPlaylistByID(ctx context.Context, playlistID uint64) (*dbmysql.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlist *dbmysql.Playlist) error
	DeletePlaylist(ctx context.Context, playlistID uint64) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]dbmysql.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID uint64) error
	RemoveVideo(ctx context.Context, playlistID, videoID uint64) (removed bool, err error)
	HasVideo(ctx context.Context, playlistID, videoID uint64) (bool, error)
	ListVideos(ctx context.Context, playlistID uint64) ([]dbmysql.Video, error)
	CountVideos(ctx context.Context, playlistIDs []uint64) (map[uint64]int64, error)
	VideoExists(ctx context.Context, videoID uint64) (bool, error)
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) CreatePlaylist(ctx context.Context, playlist *dbmysql.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *playlistRepository) GetPlaylistByID(ctx context.Context, playlistID uint64) (*dbmysql.Playlist, error) {
	var playlist dbmysql.Playlist
	err := r.db.WithContext(ctx).Where("playlist_id = ?", playlistID).First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) UpdatePlaylist(ctx context.Context, playlist *dbmysql.Playlist) error {
	return r.db.WithContext(ctx).Save(playlist).Error
}

func (r *playlistRepository) DeletePlaylist(ctx context.Context, playlistID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistID).
			Delete(&dbmysql.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Where("playlist_id = ?", playlistID).Delete(&dbmysql.Playlist{}).Error
	})
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]dbmysql.Playlist, error) {
	var playlists []dbmysql.Playlist
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlists).Error
	return playlists, err
}

// AddVideo appends the video at the next free position. The MAX read takes a
// FOR UPDATE lock on the playlist's membership rows so concurrent appends
// serialize instead of both claiming the same slot; the unique
// (playlist_id, position) index rejects any append that slips past the lock,
// and the unique (playlist_id, video_id) index refuses duplicate membership.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		err := tx.Model(&dbmysql.PlaylistVideo{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error
		if err != nil {
			return err
		}

		entry := dbmysql.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   maxPos + 1,
		}
		return tx.Create(&entry).Error
	})
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&dbmysql.PlaylistVideo{})
	return res.RowsAffected > 0, res.Error
}

func (r *playlistRepository) HasVideo(ctx context.Context, playlistID, videoID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	return count > 0, err
}

func (r *playlistRepository) ListVideos(ctx context.Context, playlistID uint64) ([]dbmysql.Video, error) {
	var videos []dbmysql.Video
	err := r.db.WithContext(ctx).Model(&dbmysql.Video{}).
		Joins("JOIN playlist_videos ON playlist_videos.video_id = videos.video_id").
		Where("playlist_videos.playlist_id = ?", playlistID).
		Order("playlist_videos.position ASC").
		Find(&videos).Error
	return videos, err
}

func (r *playlistRepository) CountVideos(ctx context.Context, playlistIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return counts, nil
	}

	type row struct {
		PlaylistID uint64
		Total      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&dbmysql.PlaylistVideo{}).
		Select("playlist_id, COUNT(*) AS total").
		Where("playlist_id IN ?", playlistIDs).
		Group("playlist_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.PlaylistID] = r.Total
	}
	return counts, nil
}

func (r *playlistRepository) VideoExists(ctx context.Context, videoID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Video{}).
		Where("video_id = ?", videoID).
		Count(&count).Error
	return count > 0, err
}
