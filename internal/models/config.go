package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	ServerAddr  string `yaml:"server_addr"`
	CORSOrigin  string `yaml:"cors_origin"`
	DatabaseURL string `yaml:"database_url"`

	KafkaBroker  string `yaml:"kafka_broker"`
	KafkaTopic   string `yaml:"kafka_topic"`
	KafkaGroupID string `yaml:"kafka_group_id"`

	StoragePath string `yaml:"storage_path"`

	GeneratorURL        string        `yaml:"generator_url"`
	GeneratorTimeoutRaw string        `yaml:"generator_timeout"`
	GeneratorTimeout    time.Duration `yaml:"-"`

	AccessTokenSecret  string `yaml:"access_token_secret"`
	RefreshTokenSecret string `yaml:"refresh_token_secret"`

	S3Endpoint  string `yaml:"s3_endpoint"`
	S3PublicURL string `yaml:"s3_public_url"`
	S3Region    string `yaml:"s3_region"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Secrets come from the environment when set, so the yaml file can
	// be committed without real credentials.
	cfg.DatabaseURL = GetEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.AccessTokenSecret = GetEnv("ACCESS_TOKEN_SECRET", cfg.AccessTokenSecret)
	cfg.RefreshTokenSecret = GetEnv("REFRESH_TOKEN_SECRET", cfg.RefreshTokenSecret)
	cfg.S3AccessKey = GetEnv("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = GetEnv("S3_SECRET_KEY", cfg.S3SecretKey)

	cfg.GeneratorTimeout = 60 * time.Second
	if cfg.GeneratorTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.GeneratorTimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid generator_timeout: %w", err)
		}
		cfg.GeneratorTimeout = d
	}
	return &cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
