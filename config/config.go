package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings read from the environment
type Config struct {
	Port            string
	BaseURL         string
	ProductsAPIURL  string
	AuthAPIURL      string
	HTTPTimeout     time.Duration
	SessionTTL      time.Duration
	StickerFolderID string
	CredentialsPath string
	PreviewCacheDir string
}

// Load reads the configuration from environment variables.
// Call after the .env file has been loaded.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		BaseURL:         strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		ProductsAPIURL:  strings.TrimRight(os.Getenv("PRODUCTS_API_URL"), "/"),
		AuthAPIURL:      strings.TrimRight(os.Getenv("AUTH_API_URL"), "/"),
		StickerFolderID: os.Getenv("STICKER_DRIVE_FOLDER_ID"),
		CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		PreviewCacheDir: getEnv("PREVIEW_CACHE_DIR", "cache/previews"),
	}

	// Remove leading colon if present (PORT from Render doesn't include it)
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}

	if cfg.ProductsAPIURL == "" {
		return nil, fmt.Errorf("PRODUCTS_API_URL environment variable is not set")
	}
	if cfg.AuthAPIURL == "" {
		return nil, fmt.Errorf("AUTH_API_URL environment variable is not set")
	}

	timeoutSeconds, err := getEnvInt("HTTP_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = time.Duration(timeoutSeconds) * time.Second

	ttlMinutes, err := getEnvInt("SESSION_TTL_MINUTES", 120)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = time.Duration(ttlMinutes) * time.Minute

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return value, nil
}
