package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Infrastructure
	Postgres PostgresConfig
	Kafka    KafkaConfig

	// Build orchestration
	Security SecurityConfig
	Webhook  WebhookConfig
	Dispatch DispatchConfig
	Token    TokenConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig is optional: with no brokers, build events are not published.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type SecurityConfig struct {
	// EncryptionKey is the master secret credentials are encrypted under (after key derivation).
	EncryptionKey string
	// WebhookPepper keys the HMAC stored in place of GitLab webhook tokens.
	WebhookPepper string
	// AdminAPIKey guards the /api/v1 surface.
	AdminAPIKey string
}

type WebhookConfig struct {
	MaxPayloadBytes int64
	RateLimitPerMin int
	AllowedIPs      []string
	// GitHubSecret is the global app webhook secret used when the active
	// GitHub App credential carries none.
	GitHubSecret string
}

type DispatchConfig struct {
	QueueCapacity int
	JobTimeout    time.Duration
	SweepInterval time.Duration
}

type TokenConfig struct {
	GitLabRefreshMargin time.Duration
	GitHubCacheTTL      time.Duration
	GitHubAPIURL        string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/buildhook/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/buildhook/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Postgres
	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}
	cfg.Postgres.MaxOpenConns = viper.GetInt("postgres.max_open_conns")
	cfg.Postgres.MaxIdleConns = viper.GetInt("postgres.max_idle_conns")
	cfg.Postgres.ConnMaxLifetime = viper.GetDuration("postgres.conn_max_lifetime")

	// Kafka
	cfg.Kafka.Brokers = splitList(viper.GetString("kafka.brokers"))
	cfg.Kafka.Topic = viper.GetString("kafka.topic")

	// Security
	cfg.Security.EncryptionKey = viper.GetString("security.encryption_key")
	cfg.Security.WebhookPepper = viper.GetString("security.webhook_pepper")
	cfg.Security.AdminAPIKey = viper.GetString("security.admin_api_key")

	// Webhooks
	cfg.Webhook.MaxPayloadBytes = viper.GetInt64("webhook.max_payload_bytes")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.GitHubSecret = viper.GetString("webhook.github_secret")
	if secret := viper.GetString("github_webhook_secret"); secret != "" {
		cfg.Webhook.GitHubSecret = secret
	}
	// Split allowed IPs since viper might not parse array seamlessly from env
	cfg.Webhook.AllowedIPs = splitList(viper.GetString("webhook.allowed_ips"))

	// Dispatch
	cfg.Dispatch.QueueCapacity = viper.GetInt("dispatch.queue_capacity")
	cfg.Dispatch.JobTimeout = viper.GetDuration("dispatch.job_timeout")
	cfg.Dispatch.SweepInterval = viper.GetDuration("dispatch.sweep_interval")

	// Token manager
	cfg.Token.GitLabRefreshMargin = viper.GetDuration("token.gitlab_refresh_margin")
	cfg.Token.GitHubCacheTTL = viper.GetDuration("token.github_cache_ttl")
	cfg.Token.GitHubAPIURL = viper.GetString("token.github_api_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required")
	}
	if cfg.Security.EncryptionKey == "" {
		return fmt.Errorf("security.encryption_key is required")
	}
	if cfg.Security.WebhookPepper == "" {
		return fmt.Errorf("security.webhook_pepper is required")
	}
	if cfg.Environment.Name == "production" && cfg.Security.AdminAPIKey == "" {
		return fmt.Errorf("security.admin_api_key is required in production")
	}
	if cfg.Dispatch.QueueCapacity <= 0 {
		return fmt.Errorf("dispatch.queue_capacity must be positive")
	}
	if cfg.Webhook.MaxPayloadBytes <= 0 {
		return fmt.Errorf("webhook.max_payload_bytes must be positive")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("postgres.max_open_conns", 20)
	viper.SetDefault("postgres.max_idle_conns", 5)
	viper.SetDefault("postgres.conn_max_lifetime", "30m")

	viper.SetDefault("kafka.topic", "buildhook.builds")

	viper.SetDefault("webhook.max_payload_bytes", 10<<20)
	viper.SetDefault("webhook.rate_limit_per_min", 600)

	viper.SetDefault("dispatch.queue_capacity", 256)
	viper.SetDefault("dispatch.job_timeout", "2m")
	viper.SetDefault("dispatch.sweep_interval", "1m")

	viper.SetDefault("token.gitlab_refresh_margin", "5m")
	viper.SetDefault("token.github_cache_ttl", "0s")
	viper.SetDefault("token.github_api_url", "https://api.github.com")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
