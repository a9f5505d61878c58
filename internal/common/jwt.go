package common

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vidtube/internal/config"
)

// Claims carried by the access token.
type Claims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RefreshClaims carried by the refresh token. Only the subject matters; the
// token itself is checked against the hash stored on the user row.
type RefreshClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the access/refresh pair. Secrets come from
// the config object, never from ambient env.
type TokenManager struct {
	auth config.AuthConfig
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{auth: cfg.Auth}
}

func (tm *TokenManager) GenerateAccessToken(userID uint64, username string) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.auth.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "vidtube",
			Subject:   "user-auth",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(tm.auth.AccessTokenSecret))
}

func (tm *TokenManager) GenerateRefreshToken(userID uint64) (string, error) {
	claims := &RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.auth.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "vidtube",
			Subject:   "refresh",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(tm.auth.RefreshTokenSecret))
}

func (tm *TokenManager) ValidateAccessToken(tokenstring string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenstring, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(tm.auth.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

func (tm *TokenManager) ValidateRefreshToken(tokenstring string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenstring, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(tm.auth.RefreshTokenSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*RefreshClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid refresh token")
}

// AccessTokenTTL is exposed for cookie Max-Age.
func (tm *TokenManager) AccessTokenTTL() time.Duration { return tm.auth.AccessTokenTTL }

// RefreshTokenTTL is exposed for cookie Max-Age.
func (tm *TokenManager) RefreshTokenTTL() time.Duration { return tm.auth.RefreshTokenTTL }

// SecureCookies reports whether auth cookies should carry the Secure flag.
func (tm *TokenManager) SecureCookies() bool { return tm.auth.SecureCookies }
