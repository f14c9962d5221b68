package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Phrases PhrasesConfig
	DB      DBConfig
	Session SessionConfig
	OTel    OTelConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port         string
	ClientOrigin string `mapstructure:"client_origin"`
}

type LogConfig struct {
	Level string
}

// PhrasesConfig names the default phrase source: a URL, a file path, or
// empty for the embedded list.
type PhrasesConfig struct {
	Source string
}

// DBConfig holds the draw log path. Empty disables the draw log.
type DBConfig struct {
	Path string
}

// SessionConfig holds session token settings.
type SessionConfig struct {
	Secret     string
	CookieName string `mapstructure:"cookie_name"`
	TTL        time.Duration
}

// OTelConfig holds tracing settings. Empty Endpoint disables export.
type OTelConfig struct {
	Endpoint    string
	ServiceName string `mapstructure:"service_name"`
}

// Load reads configuration from an optional file and the environment.
// Env var overrides use prefix BINGO_ (server.port -> BINGO_SERVER_PORT);
// the bare PORT and LOG_LEVEL variables are honoured as well.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "5175")
	v.SetDefault("server.client_origin", "http://localhost:5173")
	v.SetDefault("log.level", "info")
	v.SetDefault("phrases.source", "")
	v.SetDefault("db.path", "./data/bingo.db")
	v.SetDefault("session.secret", "dev_secret_change_me")
	v.SetDefault("session.cookie_name", "bingo_session")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service_name", "bingo")

	if cfgFile == "" {
		cfgFile = os.Getenv("BINGO_CONFIG")
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	v.SetEnvPrefix("BINGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "BINGO_SERVER_PORT", "PORT")
	_ = v.BindEnv("log.level", "BINGO_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("otel.endpoint", "BINGO_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Session.TTL <= 0 {
		return Config{}, fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	return c, nil
}
