package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	NATSUrl                 string
	MediaDir                string
	MediaBaseURL            string
	DebounceWindow          time.Duration
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		NATSUrl:                 getEnv("NATS_URL", "nats://localhost:4222"),
		MediaDir:                getEnv("MEDIA_DIR", "./media"),
		MediaBaseURL:            getEnv("MEDIA_BASE_URL", "http://localhost:8080/media"),
		DebounceWindow:          getDurationMs("FEED_DEBOUNCE_MS", 500),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationMs(key string, defaultMs int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(defaultMs) * time.Millisecond
}
