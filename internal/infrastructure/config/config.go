package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full service configuration
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Model      ModelConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Vocabulary VocabularyConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
}

// ModelConfig holds zero-shot model sidecar settings
type ModelConfig struct {
	Enabled bool
	URL     string
	Timeout time.Duration
}

// DatabaseConfig holds PostgreSQL settings for the decision log
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds result cache settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// VocabularyConfig points at an optional vocabulary file overriding the
// embedded defaults.
type VocabularyConfig struct {
	Path string
}

// Load reads configuration from environment variables with sensible
// defaults. Variables use the PARSEC_ prefix, e.g. PARSEC_SERVER_PORT.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("PARSEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
			Mode: v.GetString("server.mode"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Model: ModelConfig{
			Enabled: v.GetBool("model.enabled"),
			URL:     v.GetString("model.url"),
			Timeout: v.GetDuration("model.timeout"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("database.enabled"),
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Vocabulary: VocabularyConfig{
			Path: v.GetString("vocabulary.path"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("model.enabled", true)
	v.SetDefault("model.url", "http://localhost:8081")
	v.SetDefault("model.timeout", 30*time.Second)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "parsec")
	v.SetDefault("database.password", "parsec")
	v.SetDefault("database.dbname", "parsec")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("vocabulary.path", "")
}

// DSN builds the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Addr returns the redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ListenAddr returns the server listen address
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
