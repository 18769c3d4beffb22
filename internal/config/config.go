// Package config loads the askdesk configuration from a YAML file with
// ASKDESK_* environment overrides layered on top.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration for the askdesk binary.
type Config struct {
	// Listen is the HTTP bind address for serve mode.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// OperatorToken grants operator capability to HTTP callers presenting
	// it in X-Operator-Token. Empty disables operator access over HTTP.
	OperatorToken string `yaml:"operator_token" mapstructure:"operator_token"`
	LogLevel      string `yaml:"log_level" mapstructure:"log_level"`

	Store StoreConfig `yaml:"store" mapstructure:"store"`
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	// Backend is one of "memory", "sqlite" or "redis".
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Path is the sqlite database directory. ":memory:" keeps it in RAM.
	Path string `yaml:"path" mapstructure:"path"`

	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
		Store: StoreConfig{
			Backend: "memory",
			Path:    ".",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
	}
}

// Load reads the YAML file at path, falling back to defaults when the file
// does not exist, then applies environment overrides. An explicit path that
// cannot be read is an error; the default path missing is not.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults stand.
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envOverrides maps ASKDESK_* variables onto config fields. The nested maps
// mirror the mapstructure tags so one decode pass applies everything.
var envOverrides = map[string]func(map[string]any, string){
	"ASKDESK_LISTEN":         func(m map[string]any, v string) { m["listen"] = v },
	"ASKDESK_OPERATOR_TOKEN": func(m map[string]any, v string) { m["operator_token"] = v },
	"ASKDESK_LOG_LEVEL":      func(m map[string]any, v string) { m["log_level"] = v },
	"ASKDESK_STORE_BACKEND":  func(m map[string]any, v string) { storeMap(m)["backend"] = v },
	"ASKDESK_STORE_PATH":     func(m map[string]any, v string) { storeMap(m)["path"] = v },
	"ASKDESK_REDIS_ADDR":     func(m map[string]any, v string) { redisMap(m)["addr"] = v },
	"ASKDESK_REDIS_PASSWORD": func(m map[string]any, v string) { redisMap(m)["password"] = v },
	"ASKDESK_REDIS_DB":       func(m map[string]any, v string) { redisMap(m)["db"] = v },
	"ASKDESK_REDIS_PREFIX":   func(m map[string]any, v string) { redisMap(m)["prefix"] = v },
}

func storeMap(m map[string]any) map[string]any {
	s, ok := m["store"].(map[string]any)
	if !ok {
		s = make(map[string]any)
		m["store"] = s
	}
	return s
}

func redisMap(m map[string]any) map[string]any {
	s := storeMap(m)
	r, ok := s["redis"].(map[string]any)
	if !ok {
		r = make(map[string]any)
		s["redis"] = r
	}
	return r
}

func applyEnv(cfg *Config) error {
	overlay := make(map[string]any)
	for name, set := range envOverrides {
		if v, ok := os.LookupEnv(name); ok {
			set(overlay, v)
		}
	}
	if len(overlay) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("env override decoder: %w", err)
	}
	if err := dec.Decode(overlay); err != nil {
		return fmt.Errorf("apply env overrides: %w", err)
	}
	return nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "memory", "sqlite", "redis":
		return nil
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
}
