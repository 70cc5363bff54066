package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBURL               string
	ServerPort          string
	GitHubToken         string
	SyncInterval        time.Duration
	SyncConcurrency     int
	CommitFetchLimit    int
	CommitsPerPage      int
	RabbitMQURL         string
	DefaultModelVersion string
	MigrationsPath      string
	LogLevel            string
	Debug               bool
}

var defaults = map[string]any{
	"DB_URL":                "",
	"SERVER_PORT":           ":8081",
	"GITHUB_TOKEN":          "",
	"SYNC_INTERVAL":         "1h",
	"SYNC_CONCURRENCY":      4,
	"COMMIT_FETCH_LIMIT":    100,
	"COMMITS_PER_PAGE":      30,
	"RABBITMQ_URL":          "",
	"DEFAULT_MODEL_VERSION": "rule-v1",
	"MIGRATIONS_PATH":       "file://migrations",
	"LOG_LEVEL":             "info",
	"DEBUG":                 false,
}

// * LoadConfiguration reads the .env file (if any) into the environment and
// * then resolves every setting from the environment with defaults applied.
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		DBURL:               v.GetString("DB_URL"),
		ServerPort:          v.GetString("SERVER_PORT"),
		GitHubToken:         v.GetString("GITHUB_TOKEN"),
		SyncInterval:        v.GetDuration("SYNC_INTERVAL"),
		SyncConcurrency:     v.GetInt("SYNC_CONCURRENCY"),
		CommitFetchLimit:    v.GetInt("COMMIT_FETCH_LIMIT"),
		CommitsPerPage:      v.GetInt("COMMITS_PER_PAGE"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		DefaultModelVersion: v.GetString("DEFAULT_MODEL_VERSION"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		Debug:               v.GetBool("DEBUG"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.GitHubToken == "" {
		logger.Warn("GITHUB_TOKEN is empty, repository sync is disabled")
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBURL == "" {
		return errors.New("DB_URL is required")
	}

	if !strings.HasPrefix(c.ServerPort, ":") {
		c.ServerPort = ":" + c.ServerPort
	}

	if c.SyncInterval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL must be a positive duration, got %s", c.SyncInterval)
	}

	if c.SyncConcurrency < 1 {
		return errors.New("SYNC_CONCURRENCY must be at least 1")
	}

	if c.CommitFetchLimit < 1 {
		return errors.New("COMMIT_FETCH_LIMIT must be at least 1")
	}

	// * GitHub caps per_page at 100
	if c.CommitsPerPage < 1 || c.CommitsPerPage > 100 {
		return fmt.Errorf("COMMITS_PER_PAGE must be between 1 and 100, got %d", c.CommitsPerPage)
	}

	return nil
}

// * Level resolves the effective log level. DEBUG=true wins over LOG_LEVEL.
func (c *Config) Level() logger.Level {
	if c.Debug {
		return logger.LevelDebug
	}
	return logger.ParseLevel(c.LogLevel)
}

// * ParseRepository takes a string in the format owner/name and returns the
// * owner and name as two separate strings. If the string does not match
// * the expected format, an error is returned.
func ParseRepository(repo string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimSpace(repo), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository should be in format owner/name, got '%s'", repo)
	}
	return parts[0], parts[1], nil
}
