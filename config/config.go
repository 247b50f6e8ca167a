package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend modes accepted by BACKEND.
const (
	BackendAuto   = "auto"
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// Durable media accepted by WEB_MEDIUM.
const (
	MediumRedis  = "redis"
	MediumSQLite = "sqlite"
)

type Config struct {
	// Persistence
	Backend           string
	HostURL           string
	HostTimeout       time.Duration
	WebMedium         string
	StoragePrefix     string
	StrictPersistence bool

	RedisAddr     string
	RedisPort     string
	RedisPassword string
	SQLitePath    string

	// HTTP surface
	HTTPAddr    string
	CORSOrigins []string

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{
		Backend:           strings.ToLower(getEnv("BACKEND", BackendAuto)),
		HostURL:           os.Getenv("HOST_URL"),
		HostTimeout:       time.Duration(getEnvAsInt("HOST_TIMEOUT_SECONDS", 10)) * time.Second,
		WebMedium:         strings.ToLower(getEnv("WEB_MEDIUM", MediumSQLite)),
		StoragePrefix:     getEnv("STORAGE_PREFIX", "teamprompt:"),
		StrictPersistence: getEnvAsBool("STRICT_PERSISTENCE", false),

		RedisAddr:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SQLitePath:    getEnv("SQLITE_PATH", "data/teamprompt.db"),

		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFilename:   getEnv("LOG_FILENAME", "logs/app.log"),
		LogMaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvAsBool("LOG_COMPRESS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects mode values the selector does not understand.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendRemote, BackendLocal:
	default:
		return fmt.Errorf("invalid BACKEND %q (want auto, remote or local)", c.Backend)
	}
	switch c.WebMedium {
	case MediumRedis, MediumSQLite:
	default:
		return fmt.Errorf("invalid WEB_MEDIUM %q (want redis or sqlite)", c.WebMedium)
	}
	if c.Backend == BackendRemote && c.HostURL == "" {
		return fmt.Errorf("BACKEND=remote requires HOST_URL")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
