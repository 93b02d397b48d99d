// Package config loads scribe.yaml (or scribe.json) and applies SCRIBE_*
// environment overrides on top of it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/scribe/internal/dateformat"
	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/depth"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "scribe.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SCRIBE_"

// Config is the process configuration.
type Config struct {
	Vault      string      `mapstructure:"vault" json:"vault"`
	DepthScope string      `mapstructure:"depth_scope" json:"depth_scope"`
	DateSyntax string      `mapstructure:"date_syntax" json:"date_syntax"`
	LogLevel   string      `mapstructure:"log_level" json:"log_level"`
	HTTP       HTTPConfig  `mapstructure:"http" json:"http"`
	Redis      RedisConfig `mapstructure:"redis" json:"redis"`
	Host       HostConfig  `mapstructure:"host" json:"host"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port" json:"port"`
}

// RedisConfig is used when DepthScope is "redis".
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" json:"addr"`
	Password string        `mapstructure:"password" json:"-"`
	DB       int           `mapstructure:"db" json:"db"`
	Key      string        `mapstructure:"key" json:"key"`
	TTL      time.Duration `mapstructure:"ttl" json:"ttl"`
}

type HostConfig struct {
	FilesystemPaths bool `mapstructure:"filesystem_paths" json:"filesystem_paths"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Vault:      ".",
		DepthScope: string(depth.ScopeChain),
		DateSyntax: string(dateformat.SyntaxMoment),
		LogLevel:   "info",
		HTTP:       HTTPConfig{Port: 8080},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			Key:  "scribe:depth",
			TTL:  5 * time.Minute,
		},
		Host: HostConfig{FilesystemPaths: true},
	}
}

// envKeys maps environment variables (without prefix) to config keys.
var envKeys = map[string][]string{
	"VAULT":            {"vault"},
	"DEPTH_SCOPE":      {"depth_scope"},
	"DATE_SYNTAX":      {"date_syntax"},
	"LOG_LEVEL":        {"log_level"},
	"HTTP_PORT":        {"http", "port"},
	"REDIS_ADDR":       {"redis", "addr"},
	"REDIS_PASSWORD":   {"redis", "password"},
	"REDIS_DB":         {"redis", "db"},
	"REDIS_KEY":        {"redis", "key"},
	"REDIS_TTL":        {"redis", "ttl"},
	"FILESYSTEM_PATHS": {"host", "filesystem_paths"},
}

// Load reads the file at path, if it exists, and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	raw := map[string]any{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if strings.ToLower(filepath.Ext(path)) == ".json" {
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	applyEnv(raw)

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := depth.ParseScope(c.DepthScope); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := dateformat.ForSyntax(dateformat.Syntax(c.DateSyntax)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid config: http.port %d out of range", c.HTTP.Port)
	}
	return nil
}

func applyEnv(raw map[string]any) {
	for name, keys := range envKeys {
		value, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			continue
		}
		m := raw
		for _, k := range keys[:len(keys)-1] {
			next, ok := m[k].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[k] = next
			}
			m = next
		}
		m[keys[len(keys)-1]] = value
	}
}
