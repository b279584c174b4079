package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/namuve/frontdesk/internal/shared/config"
)

type Config struct {
	Server      sharedConfig.ServerConfig      `mapstructure:"server"`
	Logger      sharedConfig.LoggerConfig      `mapstructure:"logger"`
	Store       sharedConfig.StoreConfig       `mapstructure:"store"`
	Webhook     sharedConfig.WebhookConfig     `mapstructure:"webhook"`
	Audit       sharedConfig.AuditConfig       `mapstructure:"audit"`
	Redis       sharedConfig.RedisConfig       `mapstructure:"redis"`
	Idempotency sharedConfig.IdempotencyConfig `mapstructure:"idempotency"`
	Schema      sharedConfig.SchemaConfig      `mapstructure:"schema"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// A missing config file is not an error; defaults and FRONTDESK_* variables still apply.
func Load(env string, configDirs ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("FRONTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Store.BaseURL) == "" {
		return fmt.Errorf("store.base_url is required")
	}
	if cfg.Audit.MaxAttempts == 0 {
		return fmt.Errorf("audit.max_attempts must be at least 1")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.timezone", "Asia/Karachi")
	v.SetDefault("server.write_rate_limit", 30)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Store defaults
	v.SetDefault("store.base_url", "https://teable.namuve.com/api")
	v.SetDefault("store.token", "")
	v.SetDefault("store.timeout_seconds", 30)
	v.SetDefault("store.search_limit", 1000)

	// Webhook defaults (empty URL disables the sink)
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.method", "POST")
	v.SetDefault("webhook.timeout_seconds", 10)

	// Audit retry defaults
	v.SetDefault("audit.max_attempts", 3)
	v.SetDefault("audit.initial_interval_ms", 200)
	v.SetDefault("audit.max_interval_ms", 2000)
	v.SetDefault("audit.attempt_timeout_seconds", 10)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("idempotency.ttl_minutes", 60)

	v.SetDefault("schema.path", "")
}
