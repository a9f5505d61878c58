package playlist

import (
	"context"
	"strings"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
)

// PlaylistView adds the member video count to a playlist summary.
type PlaylistView struct {
	dbmysql.Playlist
	TotalVideos int64 `json:"totalVideos"`
}

// PlaylistDetail is a playlist with its videos resolved in order.
type PlaylistDetail struct {
	dbmysql.Playlist
	Videos []dbmysql.Video `json:"videos"`
}

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, ownerID uint64, name, description string) (*dbmysql.Playlist, error)
	GetPlaylistByID(ctx context.Context, playlistID uint64) (*PlaylistDetail, error)
	ListUserPlaylists(ctx context.Context, ownerID uint64) ([]PlaylistView, error)
	UpdatePlaylist(ctx context.Context, actorID, playlistID uint64, name, description string) (*dbmysql.Playlist, error)
	DeletePlaylist(ctx context.Context, actorID, playlistID uint64) error
	AddVideo(ctx context.Context, actorID, playlistID, videoID uint64) (*PlaylistDetail, error)
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID uint64) (*PlaylistDetail, error)
}

type playlistService struct {
	playlistRepo PlaylistRepository
}

func NewPlaylistService(playlistRepo PlaylistRepository) PlaylistService {
	return &playlistService{playlistRepo: playlistRepo}
}

// CreatePlaylist enforces per-owner name uniqueness through the unique
// (owner_id, name) index; the duplicate surfaces as a Conflict.
func (s *playlistService) CreatePlaylist(ctx context.Context, ownerID uint64, name, description string) (*dbmysql.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.BadRequest("playlist name is required")
	}

	playlist := &dbmysql.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.playlistRepo.CreatePlaylist(ctx, playlist); err != nil {
		return nil, common.AsApiError(err)
	}
	return playlist, nil
}

func (s *playlistService) GetPlaylistByID(ctx context.Context, playlistID uint64) (*PlaylistDetail, error) {
	playlist, err := s.playlistRepo.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	return s.detail(ctx, playlist)
}

func (s *playlistService) detail(ctx context.Context, playlist *dbmysql.Playlist) (*PlaylistDetail, error) {
	videos, err := s.playlistRepo.ListVideos(ctx, playlist.PlaylistID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	return &PlaylistDetail{Playlist: *playlist, Videos: videos}, nil
}

func (s *playlistService) ListUserPlaylists(ctx context.Context, ownerID uint64) ([]PlaylistView, error) {
	playlists, err := s.playlistRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, common.AsApiError(err)
	}

	ids := make([]uint64, 0, len(playlists))
	for i := range playlists {
		ids = append(ids, playlists[i].PlaylistID)
	}
	counts, err := s.playlistRepo.CountVideos(ctx, ids)
	if err != nil {
		return nil, common.AsApiError(err)
	}

	views := make([]PlaylistView, 0, len(playlists))
	for i := range playlists {
		views = append(views, PlaylistView{
			Playlist:    playlists[i],
			TotalVideos: counts[playlists[i].PlaylistID],
		})
	}
	return views, nil
}

func (s *playlistService) UpdatePlaylist(ctx context.Context, actorID, playlistID uint64, name, description string) (*dbmysql.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		playlist.Name = name
	}
	if description = strings.TrimSpace(description); description != "" {
		playlist.Description = description
	}

	if err := s.playlistRepo.UpdatePlaylist(ctx, playlist); err != nil {
		return nil, common.AsApiError(err)
	}
	return playlist, nil
}

func (s *playlistService) DeletePlaylist(ctx context.Context, actorID, playlistID uint64) error {
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return err
	}
	if err := s.playlistRepo.DeletePlaylist(ctx, playlistID); err != nil {
		return common.AsApiError(err)
	}
	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, actorID, playlistID, videoID uint64) (*PlaylistDetail, error) {
	playlist, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	exists, err := s.playlistRepo.VideoExists(ctx, videoID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if !exists {
		return nil, common.NotFound("video not found")
	}

	present, err := s.playlistRepo.HasVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if present {
		return nil, common.BadRequest("video is already in the playlist")
	}

	if err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, common.AsApiError(err)
	}
	return s.detail(ctx, playlist)
}

func (s *playlistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID uint64) (*PlaylistDetail, error) {
	playlist, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	removed, err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if !removed {
		return nil, common.NotFound("video is not in the playlist")
	}
	return s.detail(ctx, playlist)
}

func (s *playlistService) ownedPlaylist(ctx context.Context, actorID, playlistID uint64) (*dbmysql.Playlist, error) {
	playlist, err := s.playlistRepo.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if err := common.AuthorizeOwner(actorID, playlist.OwnerID, "playlist"); err != nil {
		return nil, err
	}
	return playlist, nil
}
