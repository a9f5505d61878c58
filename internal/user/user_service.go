package user

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
	"vidtube/internal/media"
)

// SubscriptionStats is the slice of the engagement store the channel
// profile needs. Implemented by engagement.SubscriptionRepository.
type SubscriptionStats interface {
	CountSubscribers(ctx context.Context, channelID uint64) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID uint64) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID uint64) (bool, error)
}

// RegisterInput is the typed shape of the multipart register request.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     multipart.File
	AvatarInfo *multipart.FileHeader
	Cover      multipart.File
	CoverInfo  *multipart.FileHeader
}

// ChannelProfile is the public view of a user as a publisher.
type ChannelProfile struct {
	dbmysql.Profile
	CoverImage           string `json:"cover_image"`
	SubscriberCount      int64  `json:"subscriber_count"`
	ChannelsSubscribedTo int64  `json:"channels_subscribed_to"`
	IsSubscribed         bool   `json:"is_subscribed"`
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*dbmysql.User, error)
	Login(ctx context.Context, identifier, password string) (*dbmysql.User, string, string, error)
	Logout(ctx context.Context, userID uint64) error
	RefreshTokens(ctx context.Context, refreshToken string) (*dbmysql.User, string, string, error)
	ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error
	UpdateAccount(ctx context.Context, userID uint64, fullName, email string) (*dbmysql.User, error)
	UpdateAvatar(ctx context.Context, userID uint64, file multipart.File, header *multipart.FileHeader) (*dbmysql.User, error)
	UpdateCoverImage(ctx context.Context, userID uint64, file multipart.File, header *multipart.FileHeader) (*dbmysql.User, error)
	GetChannelProfile(ctx context.Context, username string, viewerID uint64) (*ChannelProfile, error)
}

type userService struct {
	userRepo UserRepository
	subStats SubscriptionStats
	uploader media.Uploader
	tokens   *common.TokenManager
}

func NewUserService(userRepo UserRepository, subStats SubscriptionStats, uploader media.Uploader, tokens *common.TokenManager) UserService {
	return &userService{userRepo: userRepo, subStats: subStats, uploader: uploader, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*dbmysql.User, error) {
	username := strings.TrimSpace(in.Username)
	if err := common.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.Avatar == nil || in.AvatarInfo == nil {
		return nil, common.BadRequest("avatar file is required")
	}

	exists, err := s.userRepo.CheckUserExists(ctx, username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.Conflict("user with this username or email already exists")
	}

	hashed, err := common.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	avatar, err := s.uploader.SaveUpload(ctx, in.Avatar, in.AvatarInfo, 0)
	if err != nil {
		return nil, common.Internal("avatar upload failed", err)
	}

	var coverURL string
	if in.Cover != nil && in.CoverInfo != nil {
		cover, err := s.uploader.SaveUpload(ctx, in.Cover, in.CoverInfo, 0)
		if err != nil {
			s.uploader.Remove(ctx, avatar.URL)
			return nil, common.Internal("cover image upload failed", err)
		}
		coverURL = cover.URL
	}

	user := &dbmysql.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hashed,
		Avatar:       avatar.URL,
		CoverImage:   coverURL,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// registration failed after the blobs went up; pull them back out
		s.uploader.Remove(ctx, avatar.URL)
		if coverURL != "" {
			s.uploader.Remove(ctx, coverURL)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, identifier, password string) (*dbmysql.User, string, string, error) {
	if identifier == "" || password == "" {
		return nil, "", "", common.BadRequest("username or email and password required")
	}

	user, err := s.lookupByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", common.NotFound("user does not exist")
		}
		return nil, "", "", err
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", "", common.Unauthorized("invalid user credentials")
	}

	access, refresh, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *userService) Logout(ctx context.Context, userID uint64) error {
	return s.userRepo.UpdateRefreshTokenHash(ctx, userID, "")
}

func (s *userService) RefreshTokens(ctx context.Context, refreshToken string) (*dbmysql.User, string, string, error) {
	if refreshToken == "" {
		return nil, "", "", common.Unauthorized("refresh token required")
	}

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, "", "", common.Unauthorized("invalid or expired refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, "", "", common.Unauthorized("invalid refresh token")
	}

	// a logged-out or rotated-away token no longer matches the stored hash
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != common.HashToken(refreshToken) {
		return nil, "", "", common.Unauthorized("refresh token is expired or used")
	}

	access, refresh, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	if err := common.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := common.CheckPassword(oldPassword, user.PasswordHash); err != nil {
		return common.Unauthorized("old password is incorrect")
	}

	hashed, err := common.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed

	return s.userRepo.UpdateUser(ctx, user)
}

func (s *userService) UpdateAccount(ctx context.Context, userID uint64, fullName, email string) (*dbmysql.User, error) {
	if fullName == "" && email == "" {
		return nil, common.BadRequest("nothing to update, provide a full name or email")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email != "" {
		if err := common.ValidateEmail(email); err != nil {
			return nil, err
		}
		user.Email = strings.ToLower(strings.TrimSpace(email))
	}
	if fullName != "" {
		user.FullName = strings.TrimSpace(fullName)
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID uint64, file multipart.File, header *multipart.FileHeader) (*dbmysql.User, error) {
	return s.replaceImage(ctx, userID, file, header, func(u *dbmysql.User) *string { return &u.Avatar })
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID uint64, file multipart.File, header *multipart.FileHeader) (*dbmysql.User, error) {
	return s.replaceImage(ctx, userID, file, header, func(u *dbmysql.User) *string { return &u.CoverImage })
}

func (s *userService) replaceImage(ctx context.Context, userID uint64, file multipart.File, header *multipart.FileHeader, field func(*dbmysql.User) *string) (*dbmysql.User, error) {
	if file == nil || header == nil {
		return nil, common.BadRequest("image file is required")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.uploader.SaveUpload(ctx, file, header, userID)
	if err != nil {
		return nil, common.Internal("image upload failed", err)
	}

	target := field(user)
	old := *target
	*target = uploaded.URL

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		s.uploader.Remove(ctx, uploaded.URL)
		return nil, err
	}

	if old != "" {
		s.uploader.Remove(ctx, old)
	}
	return user, nil
}

func (s *userService) GetChannelProfile(ctx context.Context, username string, viewerID uint64) (*ChannelProfile, error) {
	channel, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("channel does not exist")
		}
		return nil, err
	}

	subscribers, err := s.subStats.CountSubscribers(ctx, channel.UserID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subStats.CountSubscribedTo(ctx, channel.UserID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != 0 {
		isSubscribed, err = s.subStats.IsSubscribed(ctx, viewerID, channel.UserID)
		if err != nil {
			return nil, err
		}
	}

	return &ChannelProfile{
		Profile:              channel.Profile(),
		CoverImage:           channel.CoverImage,
		SubscriberCount:      subscribers,
		ChannelsSubscribedTo: subscribedTo,
		IsSubscribed:         isSubscribed,
	}, nil
}

func (s *userService) lookupByIdentifier(ctx context.Context, identifier string) (*dbmysql.User, error) {
	if strings.Contains(identifier, "@") {
		return s.userRepo.GetUserByEmail(ctx, strings.ToLower(identifier))
	}
	return s.userRepo.GetUserByUsername(ctx, identifier)
}

func (s *userService) issueTokenPair(ctx context.Context, user *dbmysql.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.UserID, user.Username)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.UserID)
	if err != nil {
		return "", "", err
	}

	if err := s.userRepo.UpdateRefreshTokenHash(ctx, user.UserID, common.HashToken(refresh)); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
