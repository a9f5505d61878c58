package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is built once at process start and passed to everything that
// needs it. Business logic never reads env vars directly.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	MongoDB  MongoConfig    `json:"mongodb"`
	Auth     AuthConfig     `json:"auth"`
	Media    MediaConfig    `json:"media"`
	Logging  LoggingConfig  `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	MediaPort    string `json:"media_port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	CORSOrigin   string `json:"cors_origin"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains the GridFS media store configuration
type MongoConfig struct {
	Host        string `json:"host"`
	Port        string `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Database    string `json:"database"`
	MediaBucket string `json:"media_bucket"` // GridFS bucket holding video/image blobs
}

// AuthConfig contains the token pair secrets and lifetimes
type AuthConfig struct {
	AccessTokenSecret  string        `json:"-"`
	RefreshTokenSecret string        `json:"-"`
	AccessTokenTTL     time.Duration `json:"access_token_ttl"`
	RefreshTokenTTL    time.Duration `json:"refresh_token_ttl"`
	SecureCookies      bool          `json:"secure_cookies"`
}

// MediaConfig contains upload staging and public URL configuration
type MediaConfig struct {
	StagingDir    string `json:"staging_dir"`
	PublicBaseURL string `json:"public_base_url"` // prefix for served file URLs
	MaxUploadMB   int64  `json:"max_upload_mb"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
}

// Load builds the Config from environment variables with development defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8000"),
			MediaPort:    getEnvOrDefault("MEDIA_SERVER_PORT", "8080"),
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 30),
			CORSOrigin:   getEnvOrDefault("CORS_ORIGIN", "*"),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "vidtube_user"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "vidtube_db"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoConfig{
			Host:        getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:        getEnvOrDefault("MONGO_PORT", "27017"),
			Username:    getEnvOrDefault("MONGO_USER", ""),
			Password:    getEnvOrDefault("MONGO_PASSWORD", ""),
			Database:    getEnvOrDefault("MONGO_DB", "vidtube_media"),
			MediaBucket: getEnvOrDefault("MONGO_MEDIA_BUCKET", "media_blobs"),
		},
		Auth: AuthConfig{
			AccessTokenSecret:  getEnvOrDefault("ACCESS_TOKEN_SECRET", "dev-access-secret"),
			RefreshTokenSecret: getEnvOrDefault("REFRESH_TOKEN_SECRET", "dev-refresh-secret"),
			AccessTokenTTL:     time.Duration(getEnvIntOrDefault("ACCESS_TOKEN_TTL_MIN", 60)) * time.Minute,
			RefreshTokenTTL:    time.Duration(getEnvIntOrDefault("REFRESH_TOKEN_TTL_HOURS", 240)) * time.Hour,
			SecureCookies:      getEnvOrDefault("SECURE_COOKIES", "false") == "true",
		},
		Media: MediaConfig{
			StagingDir:    getEnvOrDefault("MEDIA_STAGING_DIR", os.TempDir()),
			PublicBaseURL: getEnvOrDefault("MEDIA_PUBLIC_BASE_URL", "/media"),
			MaxUploadMB:   int64(getEnvIntOrDefault("MEDIA_MAX_UPLOAD_MB", 256)),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}
}

// DSN builds the MySQL connection string.
func (cfg *Config) DSN() string {
	host := cfg.Database.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Database.Port
	if port == "" {
		port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		host,
		port,
		cfg.Database.DatabaseName,
	)
}

// GetMongoURI builds the MongoDB connection URI.
func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s",
			cfg.MongoDB.Username, cfg.MongoDB.Password, cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
