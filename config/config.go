package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string
	DB       DBConfig
	Mongo    MongoConfig
	Upload   UploadConfig
	Auth     AuthConfig
	CORS     CORSConfig
	// AutoMigrate applies embedded migrations on serve.
	AutoMigrate bool
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type MongoConfig struct {
	URI      string
	Database string
}

// Enabled reports whether the notification inbox has a backing store.
func (m MongoConfig) Enabled() bool {
	return m.URI != ""
}

type UploadConfig struct {
	Dir          string
	MaxSize      int64
	AllowedTypes []string
}

type AuthConfig struct {
	Enabled   bool
	SecretKey string
	TokenTTL  time.Duration
}

type CORSConfig struct {
	AllowOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "3306"))
	if err != nil {
		return nil, err
	}
	maxSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_BYTES", "5242880"), 10, 64)
	if err != nil {
		return nil, err
	}
	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     getEnv("PORT", "8000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "boutique"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "boutique"),
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "data/uploads"),
			MaxSize:      maxSize,
			AllowedTypes: splitList(getEnv("UPLOAD_ALLOWED_TYPES", "jpg,jpeg,png,gif")),
		},
		Auth: AuthConfig{
			Enabled:   getBool("AUTH_ENABLED", true),
			SecretKey: getEnv("SECRET_KEY", ""),
			TokenTTL:  time.Duration(ttlHours) * time.Hour,
		},
		CORS: CORSConfig{
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		AutoMigrate: getBool("AUTO_MIGRATE", false),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
