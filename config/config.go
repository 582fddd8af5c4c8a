package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver   string // "postgres" or "sqlite"
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string

	JWTSecret  string
	Timezone   *time.Location
	SessionTTL time.Duration

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SummaryCacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading configuration from environment")
	}

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DBDriver:      getenv("DB_DRIVER", "postgres"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getenv("DB_PORT", "5432"),
		SQLitePath:    getenv("SQLITE_PATH", "frediet.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET must be set")
	}

	tz := getenv("TIMEZONE", "Europe/Rome")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", tz, err)
	}
	cfg.Timezone = loc

	ttlHours, err := strconv.Atoi(getenv("SESSION_TTL_HOURS", "72"))
	if err != nil || ttlHours <= 0 {
		log.Fatalf("SESSION_TTL_HOURS must be a positive integer")
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	cfg.RedisDB, err = strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		log.Fatalf("REDIS_DB must be an integer")
	}

	cfg.SummaryCacheTTL, err = time.ParseDuration(getenv("SUMMARY_CACHE_TTL", "60s"))
	if err != nil {
		log.Fatalf("Invalid SUMMARY_CACHE_TTL: %v", err)
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
