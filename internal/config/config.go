package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/parsianclinic/postop-api/internal/instructions"
	"github.com/parsianclinic/postop-api/pkg/auth"
	"github.com/parsianclinic/postop-api/pkg/messaging/redis"
	"github.com/parsianclinic/postop-api/pkg/worker"
)

type Config struct {
	Server       ServerConfig                 `mapstructure:"server"`
	Database     DatabaseConfig               `mapstructure:"database"`
	JWT          auth.Config                  `mapstructure:"jwt"`
	Redis        redis.Config                 `mapstructure:"redis"`
	Outbox       worker.OutboxProcessorConfig `mapstructure:"outbox"`
	Cache        CacheConfig                  `mapstructure:"cache"`
	Locale       string                       `mapstructure:"locale"`
	Instructions map[string]instructions.Set  `mapstructure:"instructions"`
}

type ServerConfig struct {
	Port          int           `mapstructure:"port"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdown_grace", 5*time.Second)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("cache.ttl", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 15*time.Minute)
	viper.SetDefault("locale", "fa")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Environment variables (POSTOP_DATABASE_PASSWORD, POSTOP_JWT_SECRET,
	// ...) take precedence over the config file.
	if err := envconfig.Process("postop", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	return &config, nil
}
