package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=1h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	UploadDir  string        `env:"UPLOAD_DIR,  default=./static/products"`

	MySQL MySQLConfig
	Redis RedisConfig
}

type MySQLConfig struct {
	User     string `env:"DB_USER,     default=root"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST,     default=localhost"`
	Port     string `env:"DB_PORT,     default=3306"`
	Database string `env:"DB_NAME,     default=teslo_db"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ErrMissingJWTSecret aborts startup: a missing signing secret is a fatal
// configuration error, never a per-request one.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET must be set")

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &cfg, nil
}
