package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// MaxUploadMB bounds the multipart body accepted by ticket creation.
	MaxUploadMB int `mapstructure:"max_upload_mb"`
	// Timezone is the business timezone used when rendering store timestamps.
	Timezone string `mapstructure:"timezone"`
	// WriteRateLimit bounds ticket creations per client per minute. It needs
	// Redis; 0 disables it.
	WriteRateLimit int `mapstructure:"write_rate_limit"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// StoreConfig describes the remote record store every collection lives in.
type StoreConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	SearchLimit    int    `mapstructure:"search_limit"`
}

func (s *StoreConfig) GetTimeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type WebhookConfig struct {
	URL            string `mapstructure:"url"`
	Method         string `mapstructure:"method"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (w *WebhookConfig) GetTimeout() time.Duration {
	if w.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// AuditConfig bounds the retry budget of each audit sink.
type AuditConfig struct {
	MaxAttempts           uint `mapstructure:"max_attempts"`
	InitialIntervalMS     int  `mapstructure:"initial_interval_ms"`
	MaxIntervalMS         int  `mapstructure:"max_interval_ms"`
	AttemptTimeoutSeconds int  `mapstructure:"attempt_timeout_seconds"`
}

func (a *AuditConfig) GetInitialInterval() time.Duration {
	return time.Duration(a.InitialIntervalMS) * time.Millisecond
}

func (a *AuditConfig) GetMaxInterval() time.Duration {
	return time.Duration(a.MaxIntervalMS) * time.Millisecond
}

func (a *AuditConfig) GetAttemptTimeout() time.Duration {
	return time.Duration(a.AttemptTimeoutSeconds) * time.Second
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type IdempotencyConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

func (i *IdempotencyConfig) GetTTL() time.Duration {
	return time.Duration(i.TTLMinutes) * time.Minute
}

// SchemaConfig points at an alternative registry file. Empty means the embedded one.
type SchemaConfig struct {
	Path string `mapstructure:"path"`
}
