// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Videofront VideofrontConfig
	Block      BlockConfig
	Tracking   TrackingConfig
	RabbitMQ   RabbitMQConfig
	Logging    LoggingConfig
	Database   DatabaseConfig
	Server     ServerConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// VideofrontConfig is the settings bucket of the plugin: where the
// Videofront API lives and the token used to talk to it.
type VideofrontConfig struct {
	Host    string
	Token   string
	Timeout time.Duration
}

// BlockConfig holds the default values of a freshly created video block.
type BlockConfig struct {
	DisplayName   string
	VideoID       string
	AllowDownload bool
}

// TrackingConfig controls ingestion of player tracking events.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type TrackingConfig struct {
	APIKeys           []string
	MaxPayloadSize    int64
	Enabled           bool
	ValidationEnabled bool
}

// DatabaseConfig contains database connection configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DatabaseConfig struct {
	Host           string
	Name           string
	User           string
	Password       string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// DSN returns the postgres connection string for pgx.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RabbitMQConfig contains RabbitMQ connection and queue configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RabbitMQConfig struct {
	Host       string
	User       string
	Password   string
	Exchange   string
	Queue      string
	RoutingKey string
	Port       int
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Videofront API
	viper.SetDefault("videofront.host", "")
	viper.SetDefault("videofront.token", "")
	viper.SetDefault("videofront.timeout", 10*time.Second)

	// Block defaults
	viper.SetDefault("block.displayname", "New video")
	viper.SetDefault("block.videoid", "")
	viper.SetDefault("block.allowdownload", true)

	// Tracking
	viper.SetDefault("tracking.enabled", false)
	viper.SetDefault("tracking.validationenabled", true)
	viper.SetDefault("tracking.maxpayloadsize", 16384)
	viper.SetDefault("tracking.apikeys", []string{})

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "videofront")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.maxconnections", 10)
	viper.SetDefault("database.minconnections", 2)
	viper.SetDefault("database.maxidletime", 10*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)

	// RabbitMQ
	viper.SetDefault("rabbitmq.host", "localhost")
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("rabbitmq.user", "guest")
	viper.SetDefault("rabbitmq.password", "guest")
	viper.SetDefault("rabbitmq.exchange", "videofront.tracking")
	viper.SetDefault("rabbitmq.queue", "videofront.tracking.events")
	viper.SetDefault("rabbitmq.routingkey", "player.event")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
