package tweet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vidtube/internal/common"
	"vidtube/internal/dbmysql"
)

type MockTweetService struct {
	mock.Mock
}

func (m *MockTweetService) CreateTweet(ctx context.Context, ownerID uint64, content string) (*dbmysql.Tweet, error) {
	args := m.Called(ctx, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dbmysql.Tweet), args.Error(1)
}

func (m *MockTweetService) ListUserTweets(ctx context.Context, ownerID uint64, pagination common.Pagination) (*TweetPage, error) {
	args := m.Called(ctx, ownerID, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TweetPage), args.Error(1)
}

func (m *MockTweetService) UpdateTweet(ctx context.Context, actorID, tweetID uint64, content string) (*dbmysql.Tweet, error) {
	args := m.Called(ctx, actorID, tweetID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dbmysql.Tweet), args.Error(1)
}

func (m *MockTweetService) DeleteTweet(ctx context.Context, actorID, tweetID uint64) error {
	args := m.Called(ctx, actorID, tweetID)
	return args.Error(0)
}

func authedRequest(method, target, body string, userID uint64) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := common.WithUser(req.Context(), &dbmysql.User{UserID: userID, Username: "alice"})
	return req.WithContext(ctx)
}

func TestTweetHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockTweetService)
		h := NewHandler(svc)

		svc.On("CreateTweet", mock.Anything, uint64(3), "hello").
			Return(&dbmysql.Tweet{TweetID: 1, OwnerID: 3, Content: "hello"}, nil)

		req := authedRequest(http.MethodPost, "/api/v1/tweet", `{"content":"hello"}`, 3)
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var envelope struct {
			StatusCode int  `json:"statusCode"`
			Success    bool `json:"success"`
			Data       struct {
				TweetID uint64 `json:"tweet_id"`
				Content string `json:"content"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.True(t, envelope.Success)
		require.Equal(t, "hello", envelope.Data.Content)
	})

	t.Run("missing auth", func(t *testing.T) {
		h := NewHandler(new(MockTweetService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/tweet", strings.NewReader(`{"content":"x"}`))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		h := NewHandler(new(MockTweetService))

		req := authedRequest(http.MethodPost, "/api/v1/tweet", `{not json`, 3)
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		h := NewHandler(new(MockTweetService))

		req := authedRequest(http.MethodPost, "/api/v1/tweet", `{"content":""}`, 3)
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var envelope struct {
			Success bool     `json:"success"`
			Errors  []string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.False(t, envelope.Success)
		require.NotEmpty(t, envelope.Errors)
	})
}

func TestTweetHandler_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		svc := new(MockTweetService)
		h := NewHandler(svc)

		svc.On("DeleteTweet", mock.Anything, uint64(3), uint64(9)).Return(nil)

		req := authedRequest(http.MethodDelete, "/api/v1/tweet/9", "", 3)
		req = mux.SetURLVars(req, map[string]string{"tweetId": "9"})
		rec := httptest.NewRecorder()
		h.Delete(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad tweet id", func(t *testing.T) {
		h := NewHandler(new(MockTweetService))

		req := authedRequest(http.MethodDelete, "/api/v1/tweet/zero", "", 3)
		req = mux.SetURLVars(req, map[string]string{"tweetId": "zero"})
		rec := httptest.NewRecorder()
		h.Delete(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("forbidden bubbles through", func(t *testing.T) {
		svc := new(MockTweetService)
		h := NewHandler(svc)

		svc.On("DeleteTweet", mock.Anything, uint64(3), uint64(9)).
			Return(common.Forbidden("you do not own this tweet"))

		req := authedRequest(http.MethodDelete, "/api/v1/tweet/9", "", 3)
		req = mux.SetURLVars(req, map[string]string{"tweetId": "9"})
		rec := httptest.NewRecorder()
		h.Delete(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
