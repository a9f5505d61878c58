package tweet

import (
	"context"
	"strings"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
)

const maxTweetLength = 500

type TweetPage struct {
	Tweets      []dbmysql.Tweet `json:"tweets"`
	TotalTweets int64           `json:"totalTweets"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int64           `json:"totalPages"`
}

type TweetService interface {
	CreateTweet(ctx context.Context, ownerID uint64, content string) (*dbmysql.Tweet, error)
	ListUserTweets(ctx context.Context, ownerID uint64, pagination common.Pagination) (*TweetPage, error)
	UpdateTweet(ctx context.Context, actorID, tweetID uint64, content string) (*dbmysql.Tweet, error)
	DeleteTweet(ctx context.Context, actorID, tweetID uint64) error
}

type tweetService struct {
	tweetRepo TweetRepository
}

func NewTweetService(tweetRepo TweetRepository) TweetService {
	return &tweetService{tweetRepo: tweetRepo}
}

func (s *tweetService) CreateTweet(ctx context.Context, ownerID uint64, content string) (*dbmysql.Tweet, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	tweet := &dbmysql.Tweet{OwnerID: ownerID, Content: content}
	if err := s.tweetRepo.CreateTweet(ctx, tweet); err != nil {
		return nil, common.AsApiError(err)
	}
	return tweet, nil
}

func (s *tweetService) ListUserTweets(ctx context.Context, ownerID uint64, pagination common.Pagination) (*TweetPage, error) {
	exists, err := s.tweetRepo.UserExists(ctx, ownerID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if !exists {
		return nil, common.NotFound("user not found")
	}

	tweets, err := s.tweetRepo.ListByOwner(ctx, ownerID, pagination.Offset(), pagination.Limit)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	total, err := s.tweetRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, common.AsApiError(err)
	}

	return &TweetPage{
		Tweets:      tweets,
		TotalTweets: total,
		CurrentPage: pagination.Page,
		TotalPages:  common.TotalPages(total, pagination.Limit),
	}, nil
}

func (s *tweetService) UpdateTweet(ctx context.Context, actorID, tweetID uint64, content string) (*dbmysql.Tweet, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	tweet, err := s.tweetRepo.GetTweetByID(ctx, tweetID)
	if err != nil {
		return nil, common.AsApiError(err)
	}
	if err := common.AuthorizeOwner(actorID, tweet.OwnerID, "tweet"); err != nil {
		return nil, err
	}

	tweet.Content = content
	if err := s.tweetRepo.UpdateTweet(ctx, tweet); err != nil {
		return nil, common.AsApiError(err)
	}
	return tweet, nil
}

func (s *tweetService) DeleteTweet(ctx context.Context, actorID, tweetID uint64) error {
	tweet, err := s.tweetRepo.GetTweetByID(ctx, tweetID)
	if err != nil {
		return common.AsApiError(err)
	}
	if err := common.AuthorizeOwner(actorID, tweet.OwnerID, "tweet"); err != nil {
		return err
	}

	if err := s.tweetRepo.DeleteTweet(ctx, tweetID); err != nil {
		return common.AsApiError(err)
	}
	return nil
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", common.BadRequest("tweet content is required")
	}
	if len(content) > maxTweetLength {
		return "", common.BadRequest("tweet content is too long")
	}
	return content, nil
}
