// internal/config/config.go
//
// Process configuration read from the environment.
// A .env file in the working directory is loaded first (godotenv); variables
// already set in the environment win over the file.

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server and terminal client read.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	DictFile     string // empty uses the embedded dictionary
	DailySalt    string
	JWTSecret    string
	JWTTTL       time.Duration
	CookieName   string
	ClientOrigin string
	Production   bool
	SessionIdle  time.Duration
}

// Load reads .env (if present) and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Port:         Str("PORT", "5175"),
		LogLevel:     Str("LOG_LEVEL", "info"),
		DBPath:       Str("DB_PATH", "./data/letterfall.db"),
		DictFile:     os.Getenv("DICT_FILE"),
		DailySalt:    Str("DAILY_SALT", "local_dev_salt"),
		JWTSecret:    Str("JWT_SECRET", "dev_secret_change_me"),
		JWTTTL:       time.Duration(Int("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:   Str("COOKIE_NAME", "letterfall_token"),
		ClientOrigin: Str("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("NODE_ENV") == "production",
		SessionIdle:  time.Duration(Int("SESSION_IDLE_MINUTES", 30)) * time.Minute,
	}
}

// Str returns the value of k or def if unset/empty.
func Str(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Int parses k as an integer, falling back to def when unset or malformed.
func Int(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
