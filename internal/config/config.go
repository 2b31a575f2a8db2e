package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultPort        = "8080"
	defaultJWTTTL      = "24h"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultStorageRoot = "./data/groups"
	defaultTmpDir      = "./data/tmp"
)

// Config is the runtime configuration resolved from the environment.
// StorageRoot is the parent of every group's storage subtree; TmpDir is the
// process-wide staging area for uploads in flight.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	StorageRoot string
	TmpDir      string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", defaultPort),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	ttl, err := parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.JWTTTL = ttl

	cfg.StorageRoot, err = absEnvPath("STORAGE_ROOT", defaultStorageRoot)
	if err != nil {
		return nil, err
	}
	cfg.TmpDir, err = absEnvPath("UPLOAD_TMP_DIR", defaultTmpDir)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func absEnvPath(key, fallback string) (string, error) {
	p, err := filepath.Abs(getEnv(key, fallback))
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", key, err)
	}
	return p, nil
}
