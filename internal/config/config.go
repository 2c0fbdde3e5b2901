package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"taskmanager/internal/logger"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. The
// database settings mirror what the Cloud SQL secret store injects:
// either INSTANCE_CONNECTION_NAME (connector path) or DB_HOST/DB_PORT
// (direct path, e.g. a local auth proxy).
type Config struct {
	AppPort string

	DBUser                 string
	DBPass                 string
	DBName                 string
	InstanceConnectionName string
	DBHost                 string
	DBPort                 string
	PrivateIP              bool
	IAMAuth                bool

	LogLevel string
	LogJSON  bool

	// Optional Redis backend for the rate limiter. Empty means the
	// in-memory limiter is used.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration
}

// Load reads the environment (plus an optional .env file) and exits the
// process when no usable database configuration is present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := fromEnv()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("configuration invalid", "error", err)
	}
	return cfg
}

func fromEnv() *Config {
	cfg := &Config{
		AppPort:                envOr("APP_PORT", "8080"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPass:                 os.Getenv("DB_PASS"),
		DBName:                 os.Getenv("DB_NAME"),
		InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 envOr("DB_PORT", "5432"),
		PrivateIP:              os.Getenv("PRIVATE_IP") == "true",
		IAMAuth:                os.Getenv("DB_IAM_AUTH") == "true",
		LogLevel:               envOr("LOG_LEVEL", "info"),
		LogJSON:                os.Getenv("LOG_JSON") == "true",
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}

	cfg.APIRateLimit = 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateLimit = n
		}
	}

	cfg.APIRateWindow = time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateWindow = time.Duration(n) * time.Second
		}
	}

	return cfg
}

// Validate checks that one of the two connection shapes is complete:
// connector (instance name + user + db, password optional under IAM auth)
// or direct (host + user + password + db).
func (c *Config) Validate() error {
	if c.InstanceConnectionName != "" && c.DBUser != "" && c.DBName != "" {
		if c.DBPass == "" && !c.IAMAuth {
			return errors.New("DB_PASS is required unless DB_IAM_AUTH=true")
		}
		return nil
	}
	if c.DBHost != "" && c.DBUser != "" && c.DBPass != "" && c.DBName != "" {
		return nil
	}
	return errors.New("set INSTANCE_CONNECTION_NAME or DB_HOST plus DB_USER/DB_PASS/DB_NAME")
}

// UseConnector reports whether the Cloud SQL connector path is configured.
func (c *Config) UseConnector() bool {
	return c.InstanceConnectionName != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
