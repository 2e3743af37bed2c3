package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// MaxBorrowLimit is the maximum number of simultaneously active loans
	// per member; the borrow that would exceed it is refused.
	MaxBorrowLimit int `env:"MAX_BORROW_LIMIT, default=5"`

	// SessionTTLHours bounds both the JWT lifetime and the Redis session
	// cache entry.
	SessionTTLHours int `env:"SESSION_TTL_HOURS, default=24"`

	// PasswordHasher selects the injected hashing capability: "sha256"
	// (deterministic digest) or "bcrypt".
	PasswordHasher string `env:"PASSWORD_HASHER, default=sha256"`

	// AuditWorkers is the number of sharded audit trail writers.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=lending_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
