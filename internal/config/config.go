package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all server configuration, read from a YAML file and the
// environment (environment wins).
type Config struct {
	LogLevel    string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    int       `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	StorageType string    `yaml:"storage-type" env:"STORAGE_TYPE" env-default:"memory"`
	Redis       Redis     `yaml:"redis"`
	Validator   Validator `yaml:"validator"`
	PackPath    string    `yaml:"pack-path" env:"PACK_PATH" env-default:""`
}

// Redis holds Redis connection settings, used when storage-type is "redis"
type Redis struct {
	URL         string        `yaml:"url" env:"REDIS_URL" env-default:""`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"REDIS_SNAPSHOT_TTL" env-default:"0"`
}

// Validator holds settings for the external answer validator. An empty URL
// disables it and answers resolve through local matching only.
type Validator struct {
	URL             string        `yaml:"url" env:"VALIDATOR_URL" env-default:""`
	Timeout         time.Duration `yaml:"timeout" env:"VALIDATOR_TIMEOUT" env-default:"6s"`
	ConfidenceFloor float64       `yaml:"confidence-floor" env:"VALIDATOR_CONFIDENCE_FLOOR" env-default:"0.5"`
	CoolDown        time.Duration `yaml:"cool-down" env:"VALIDATOR_COOL_DOWN" env-default:"1m"`
}

// Load reads configuration from the given file, falling back to environment
// variables alone when the path is empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read config from environment: %w", err)
	}
	return cfg, nil
}
