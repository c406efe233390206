package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is loaded once in main and
// handed to whoever needs a part of it.
type Config struct {
	DatabaseURL string
	DBMinConns  int32
	DBMaxConns  int32

	Port string

	JWTSecret            string
	OperatorUsername     string
	OperatorPasswordHash string

	RedisAddr         string
	PromotionCacheTTL time.Duration

	GeminiAPIKey string
	GeminiModel  string

	DetectorWindowDays int
	FeedURL            string
}

const (
	DefaultPort               = "3000"
	DefaultOperatorUsername   = "operator"
	DefaultPromotionCacheTTL  = 5 * time.Minute
	DefaultGeminiModel        = "gemini-1.5-flash"
	DefaultDetectorWindowDays = 30
	DefaultFeedURL            = "https://www.checkjebon.nl/data/supermarkets.json"
)

// LoadEnv reads a .env file into the environment if there is one.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment variables")
	}
}

// Load reads the configuration from the environment. DATABASE_URL is required;
// everything else has a default or switches its feature off when empty.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		Port:                 getEnv("PORT", DefaultPort),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		OperatorUsername:     getEnv("OPERATOR_USERNAME", DefaultOperatorUsername),
		OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnv("GEMINI_MODEL", DefaultGeminiModel),
		FeedURL:              getEnv("FEED_URL", DefaultFeedURL),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is not set")
	}

	minConns, err := getInt("DB_MIN_CONNS", 1)
	if err != nil {
		return Config{}, err
	}
	maxConns, err := getInt("DB_MAX_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	if minConns < 0 || maxConns < 1 || minConns > maxConns {
		return Config{}, fmt.Errorf("invalid pool size: DB_MIN_CONNS=%d DB_MAX_CONNS=%d", minConns, maxConns)
	}
	cfg.DBMinConns = int32(minConns)
	cfg.DBMaxConns = int32(maxConns)

	if cfg.DetectorWindowDays, err = getInt("DETECTOR_WINDOW_DAYS", DefaultDetectorWindowDays); err != nil {
		return Config{}, err
	}
	if cfg.DetectorWindowDays < 1 {
		return Config{}, fmt.Errorf("DETECTOR_WINDOW_DAYS must be positive, got %d", cfg.DetectorWindowDays)
	}

	ttl := getEnv("PROMOTION_CACHE_TTL", DefaultPromotionCacheTTL.String())
	if cfg.PromotionCacheTTL, err = time.ParseDuration(ttl); err != nil {
		return Config{}, fmt.Errorf("PROMOTION_CACHE_TTL: %w", err)
	}
	return cfg, nil
}

// AuthEnabled reports whether operator login is configured.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.OperatorPasswordHash != ""
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
