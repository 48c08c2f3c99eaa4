package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings, read once at startup.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	SeedFile      string
	IsProd        bool
}

func Load() *Config {
	_ = godotenv.Load()

	ttl := 24 * time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}

	return &Config{
		Port:          getenv("PORT", "5000"),
		DBPath:        getenv("DB_PATH", "./data/animetrack.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      ttl,
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@animetrack.local"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		SeedFile:      os.Getenv("SEED_FILE"),
		IsProd:        os.Getenv("APP_ENV") == "release",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
