package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/aretw0/ndtm/internal/logging"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "ndtm.yaml"

// Config is the runtime configuration shared by every command.
type Config struct {
	LogLevel string `mapstructure:"log_level" env:"NDTM_LOG_LEVEL"`
	Optimize bool   `mapstructure:"optimize" env:"NDTM_OPTIMIZE"`

	Dialect domain.Dialect `mapstructure:"dialect"`
	Server  ServerConfig   `mapstructure:"server"`
	Store   StoreConfig    `mapstructure:"store"`
	Redis   RedisConfig    `mapstructure:"redis"`
	MCP     MCPConfig      `mapstructure:"mcp"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" env:"NDTM_SERVER_ADDR"`
}

// StoreConfig configures the file program store.
type StoreConfig struct {
	// Dir keeps one <name>.tm file per program.
	Dir string `mapstructure:"dir" env:"NDTM_STORE_DIR"`
}

// RedisConfig configures the Redis program store. A non-empty Addr takes
// precedence over Store.Dir; with neither set programs are kept in memory.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" env:"NDTM_REDIS_ADDR"`
	Password string        `mapstructure:"password" env:"NDTM_REDIS_PASSWORD"`
	DB       int           `mapstructure:"db" env:"NDTM_REDIS_DB"`
	Prefix   string        `mapstructure:"prefix" env:"NDTM_REDIS_PREFIX"`
	TTL      time.Duration `mapstructure:"ttl" env:"NDTM_REDIS_TTL"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	Transport string `mapstructure:"transport" env:"NDTM_MCP_TRANSPORT"`
	Port      int    `mapstructure:"port" env:"NDTM_MCP_PORT"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		LogLevel: "info",
		Dialect:  domain.DefaultDialect(),
		Server:   ServerConfig{Addr: ":8080"},
		Redis:    RedisConfig{Prefix: "ndtm:program:"},
		MCP:      MCPConfig{Transport: "stdio", Port: 8080},
	}
}

// Load layers defaults, the YAML file at path and NDTM_* environment
// variables, in that order. An empty path reads DefaultFile if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be caught while decoding.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.Dialect.Validate(); err != nil {
		return fmt.Errorf("invalid dialect: %w", err)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q (use stdio or sse)", c.MCP.Transport)
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToRuneHook,
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

var (
	runeType   = reflect.TypeOf(rune(0))
	symbolType = reflect.TypeOf(domain.Symbol(0))
)

// stringToRuneHook lets markers be written as one-character strings.
func stringToRuneHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || (to != runeType && to != symbolType) {
		return data, nil
	}
	s := data.(string)
	if utf8.RuneCountInString(s) != 1 {
		return nil, fmt.Errorf("marker %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if to == symbolType {
		return domain.Symbol(r), nil
	}
	return r, nil
}
