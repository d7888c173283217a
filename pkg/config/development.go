package config

import (
	"os"
	"path/filepath"
)

func loadDevelopmentConfig(cfg *Config) {
	cfg.LogLevel = "debug"
	cfg.CacheDir = "./tmp/cache"
}

func loadTestConfig(cfg *Config) {
	cfg.LogLevel = "warn"
	cfg.CacheDir = filepath.Join(os.TempDir(), "comicinfo-test-cache")
}

func loadProductionConfig(cfg *Config) {
	cfg.LogLevel = "info"
	cfg.CacheDir = "/var/cache/comicinfo"
}
