// Package config loads client settings from an optional YAML file and
// FIGHTNIGHT_* environment variables on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before mapping them to keys.
const EnvPrefix = "FIGHTNIGHT_"

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env struct {
		Debug bool `yaml:"debug"`
		Log   Log  `yaml:"log"`
	} `yaml:"env"`

	Upstream Upstream `yaml:"upstream"`
	Storage  Storage  `yaml:"storage"`
	Login    Login    `yaml:"login"`
}

type Log struct {
	Level string `yaml:"level"`
	// File receives log output instead of stderr when set. The TUI sets it
	// so log lines do not tear the screen.
	File string `yaml:"file"`
}

// Upstream configures the demo catalog API.
type Upstream struct {
	BaseURL       string        `yaml:"baseUrl"`
	Timeout       time.Duration `yaml:"timeout"`
	FightsLimit   int           `yaml:"fightsLimit"`
	PastLimit     int           `yaml:"pastLimit"`
	ExpiresInMins int           `yaml:"expiresInMins"`
	// RequestsPerSecond throttles outgoing requests; 0 disables throttling.
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	UserAgent         string  `yaml:"userAgent"`
}

// Storage configures where the persisted state blob lives.
type Storage struct {
	Driver string `yaml:"driver"`
	// DSN is a file path for sqlite or a connection string for postgres.
	DSN string `yaml:"dsn"`
	// Passphrase seals stored values at rest when non-empty.
	Passphrase string `yaml:"passphrase"`
}

// Login holds the pre-filled test credentials and the attempt limiter.
type Login struct {
	DefaultUsername string        `yaml:"defaultUsername"`
	DefaultPassword string        `yaml:"defaultPassword"`
	Window          time.Duration `yaml:"window"`
	MaxFails        int           `yaml:"maxFails"`
	BlockFor        time.Duration `yaml:"blockFor"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	cfg := &Config{}
	cfg.Env.Log.Level = "warn"
	cfg.Upstream = Upstream{
		BaseURL:           "https://dummyjson.com",
		Timeout:           15 * time.Second,
		FightsLimit:       30,
		PastLimit:         15,
		ExpiresInMins:     60,
		RequestsPerSecond: 5,
		UserAgent:         "fightnight/1.0",
	}
	cfg.Storage = Storage{
		Driver: DriverSQLite,
		DSN:    filepath.Join(Dir(), "state.db"),
	}
	cfg.Login = Login{
		DefaultUsername: "emilys",
		DefaultPassword: "emilyspass",
		Window:          15 * time.Minute,
		MaxFails:        5,
		BlockFor:        time.Minute,
	}
	return cfg
}

// Dir returns the per-user config directory.
func Dir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "fightnight")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fightnight")
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string { return filepath.Join(Dir(), "config.yaml") }

// Load reads path (or DefaultPath when empty) over the defaults, then applies
// FIGHTNIGHT_* environment overrides. A missing file is not an error;
// an explicitly named missing file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	existing := k.Raw()
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, v string) (string, any) {
			// FIGHTNIGHT_UPSTREAM_BASEURL -> upstream.baseUrl
			return canonicalizeEnvKey(strings.TrimPrefix(key, EnvPrefix), existing), v
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "yaml",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("storage.driver %q: want %s or %s", c.Storage.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Storage.DSN == "" {
		return errors.New("storage.dsn is empty")
	}
	if c.Upstream.BaseURL == "" {
		return errors.New("upstream.baseUrl is empty")
	}
	if c.Upstream.FightsLimit <= 0 || c.Upstream.PastLimit <= 0 {
		return errors.New("upstream limits must be positive")
	}
	return nil
}

// canonicalizeEnvKey maps STORAGE_DSN to storage.dsn, reusing the casing of
// keys already present in the loaded file.
func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}
		matched := segment
		var next map[string]any
		for k, v := range current {
			if strings.EqualFold(k, segment) {
				matched = k
				next, _ = v.(map[string]any)
				break
			}
		}
		canonical = append(canonical, matched)
		current = next
	}

	return strings.Join(canonical, ".")
}
