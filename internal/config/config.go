package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionStoreFile  = "file"
	SessionStoreRedis = "redis"
)

// Config aggregates runtime configuration for the console and the reference backend.
type Config struct {
	App      AppConfig
	API      APIConfig
	Session  SessionConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	MockAPI  MockAPIConfig
}

// AppConfig holds identification values.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// APIConfig points the gateway client at the backend.
type APIConfig struct {
	BaseURL               string
	RequestTimeoutSeconds int
}

// SessionConfig selects where the bearer token is persisted.
type SessionConfig struct {
	Store    string
	Dir      string
	FilePath string
	RedisKey string
}

// PostgresConfig holds DB connection values for the reference backend.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior. An empty Output lets each
// binary pick its own destination.
type LoggerConfig struct {
	Level  string
	Output string
}

// AuthConfig defines token parameters of the reference backend.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// MockAPIConfig controls the reference backend server.
type MockAPIConfig struct {
	Host              string
	Port              string
	SeedAdminName     string
	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	store := strings.ToLower(getEnv("SESSION_STORE", SessionStoreFile))
	if store != SessionStoreFile && store != SessionStoreRedis {
		return nil, fmt.Errorf("invalid SESSION_STORE %q: want %q or %q", store, SessionStoreFile, SessionStoreRedis)
	}

	sessionDir := getEnv("SESSION_DIR", defaultStateDir())

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "ticket-console"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		API: APIConfig{
			BaseURL:               strings.TrimRight(getEnv("CONSOLE_API_BASE_URL", "http://127.0.0.1:8000"), "/"),
			RequestTimeoutSeconds: getEnvAsInt("CONSOLE_API_TIMEOUT_SECONDS", 0),
		},
		Session: SessionConfig{
			Store:    store,
			Dir:      sessionDir,
			FilePath: getEnv("SESSION_FILE", filepath.Join(sessionDir, "session.yaml")),
			RedisKey: getEnv("SESSION_REDIS_KEY", "ticket-console:token"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Output: os.Getenv("LOG_OUTPUT"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		MockAPI: MockAPIConfig{
			Host:              getEnv("MOCKAPI_HOST", "127.0.0.1"),
			Port:              getEnv("MOCKAPI_PORT", "8000"),
			SeedAdminName:     getEnv("MOCKAPI_SEED_ADMIN_NAME", "Console Admin"),
			SeedAdminEmail:    os.Getenv("MOCKAPI_SEED_ADMIN_EMAIL"),
			SeedAdminPassword: os.Getenv("MOCKAPI_SEED_ADMIN_PASSWORD"),
		},
	}

	return cfg, nil
}

// RequestTimeout returns the configured request timeout; zero means the
// transport default.
func (a APIConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Addr returns the reference backend bind address.
func (m MockAPIConfig) Addr() string {
	return fmt.Sprintf("%s:%s", m.Host, m.Port)
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ticket-console")
	}
	return ".ticket-console"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
