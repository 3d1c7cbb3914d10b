package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

// Server holds the HTTP server settings.
type Server struct {
	Addr string `env:"KALLAX_ADDR" envDefault:":8080"`

	BGGBaseURL string `env:"KALLAX_BGG_URL" envDefault:"https://boardgamegeek.com"`
	BGGToken   string `env:"KALLAX_BGG_TOKEN"`

	// RedisURL selects the Redis cache. Empty falls back to CacheDir.
	RedisURL    string        `env:"KALLAX_REDIS_URL"`
	RedisPrefix string        `env:"KALLAX_REDIS_PREFIX" envDefault:"kallax:"`
	CacheDir    string        `env:"KALLAX_CACHE_DIR"`
	CacheTTL    time.Duration `env:"KALLAX_CACHE_TTL" envDefault:"24h"`

	// MongoURI enables result storage in MongoDB. Empty keeps results in
	// memory.
	MongoURI      string `env:"KALLAX_MONGO_URI"`
	MongoDatabase string `env:"KALLAX_MONGO_DB" envDefault:"kallax"`

	ReadTimeout     time.Duration `env:"KALLAX_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"KALLAX_WRITE_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"KALLAX_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// MaxItems caps the items a single pack request may carry.
	MaxItems int    `env:"KALLAX_MAX_ITEMS" envDefault:"5000"`
	LogLevel string `env:"KALLAX_LOG_LEVEL" envDefault:"info"`
}

// LoadServer reads .env files (missing ones are skipped) and then the
// environment. Variables already set win over .env entries.
func LoadServer(envFiles ...string) (Server, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Server{}, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "load %s", f)
		}
	}

	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks settings env.Parse cannot.
func (s Server) Validate() error {
	if s.Addr == "" {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "KALLAX_ADDR cannot be empty")
	}
	if err := kerrors.ValidateURL(s.BGGBaseURL); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "KALLAX_BGG_URL")
	}
	if s.MaxItems <= 0 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "KALLAX_MAX_ITEMS must be positive, got %d", s.MaxItems)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "invalid KALLAX_LOG_LEVEL %q", s.LogLevel)
	}
	return nil
}

// String describes the backends in use, without secrets.
func (s Server) String() string {
	cache := "file"
	if s.RedisURL != "" {
		cache = "redis"
	}
	store := "memory"
	if s.MongoURI != "" {
		store = "mongo"
	}
	return fmt.Sprintf("addr=%s cache=%s store=%s bgg=%s", s.Addr, cache, store, s.BGGBaseURL)
}
