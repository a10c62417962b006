package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/titanous/json5"

	"github.com/dedene/flipboard-cli/internal/history"
	"github.com/dedene/flipboard-cli/internal/share"
)

// Config holds user preferences.
type Config struct {
	Origin         string `json:"origin,omitempty" validate:"omitempty,http_url"`
	Theme          string `json:"theme,omitempty" validate:"omitempty,oneof=auto light dark"`
	AutoCopy       *bool  `json:"auto_copy,omitempty"`
	AutoOpen       *bool  `json:"auto_open,omitempty"`
	Animate        *bool  `json:"animate,omitempty"`
	HistoryBackend string `json:"history_backend,omitempty" validate:"omitempty,oneof=file badger redis"`
	RedisURL       string `json:"redis_url,omitempty" validate:"omitempty,url,startswith=redis"`
}

// Env holds FLIPBOARD_* environment overrides.
type Env struct {
	Origin         string `envconfig:"ORIGIN"`
	Theme          string `envconfig:"THEME"`
	HistoryBackend string `envconfig:"HISTORY_BACKEND"`
	RedisURL       string `envconfig:"REDIS_URL"`
}

var validate = validator.New()

// knownKey describes a config key and its optional validator.
type knownKey struct {
	validate func(string) error
}

var knownKeys = map[string]knownKey{
	"origin":          {validate: validateOrigin},
	"theme":           {validate: validateEnum("auto", "light", "dark")},
	"auto_copy":       {validate: validateBool},
	"auto_open":       {validate: validateBool},
	"animate":         {validate: validateBool},
	"history_backend": {validate: validateEnum(history.Backends...)},
	"redis_url":       {validate: validateRedisURL},
}

func validateEnum(allowed ...string) func(string) error {
	return func(val string) error {
		for _, a := range allowed {
			if val == a {
				return nil
			}
		}

		return fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
	}
}

func validateBool(val string) error {
	if val != "true" && val != "false" {
		return fmt.Errorf("must be true or false")
	}

	return nil
}

func validateOrigin(val string) error {
	if _, err := share.NormalizeOrigin(val); err != nil {
		return err
	}

	return nil
}

func validateRedisURL(val string) error {
	if !strings.HasPrefix(val, "redis://") && !strings.HasPrefix(val, "rediss://") {
		return fmt.Errorf("must start with redis:// or rediss://")
	}

	return nil
}

// Validate checks every field against its constraints.
func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Load reads config from the JSON5 file at path.
// Returns an empty Config if the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user config path
	if os.IsNotExist(err) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnv overlays non-empty FLIPBOARD_* environment variables onto cfg.
// cfg is left untouched when the result does not validate.
func (cfg *Config) ApplyEnv() error {
	var env Env
	if err := envconfig.Process(appName, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	next := *cfg

	if env.Origin != "" {
		next.Origin = env.Origin
	}

	if env.Theme != "" {
		next.Theme = env.Theme
	}

	if env.HistoryBackend != "" {
		next.HistoryBackend = env.HistoryBackend
	}

	if env.RedisURL != "" {
		next.RedisURL = env.RedisURL
	}

	if err := next.Validate(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	*cfg = next

	return nil
}

// Save writes config as pretty-printed JSON atomically.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	data = append(data, '\n')

	return atomicWrite(path, data)
}

// atomicWrite writes data to path via temp-file + rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	tmpPath = "" // prevent deferred cleanup

	return nil
}

func boolString(b *bool) (string, bool) {
	if b == nil {
		return "", false
	}

	return fmt.Sprintf("%t", *b), true
}

// Get returns the string value for a config key and whether it is set.
func (cfg *Config) Get(key string) (string, bool) {
	switch key {
	case "origin":
		return cfg.Origin, cfg.Origin != ""
	case "theme":
		return cfg.Theme, cfg.Theme != ""
	case "auto_copy":
		return boolString(cfg.AutoCopy)
	case "auto_open":
		return boolString(cfg.AutoOpen)
	case "animate":
		return boolString(cfg.Animate)
	case "history_backend":
		return cfg.HistoryBackend, cfg.HistoryBackend != ""
	case "redis_url":
		return cfg.RedisURL, cfg.RedisURL != ""
	default:
		return "", false
	}
}

// Set sets a config key to a value after validation.
func (cfg *Config) Set(key, value string) error {
	kk, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(KnownKeys(), ", "))
	}

	if kk.validate != nil {
		if err := kk.validate(value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
	}

	switch key {
	case "origin":
		cfg.Origin = value
	case "theme":
		cfg.Theme = value
	case "auto_copy":
		b := value == "true"
		cfg.AutoCopy = &b
	case "auto_open":
		b := value == "true"
		cfg.AutoOpen = &b
	case "animate":
		b := value == "true"
		cfg.Animate = &b
	case "history_backend":
		cfg.HistoryBackend = value
	case "redis_url":
		cfg.RedisURL = value
	}

	return nil
}

// Unset removes a config key (resets to zero/nil).
func (cfg *Config) Unset(key string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(KnownKeys(), ", "))
	}

	switch key {
	case "origin":
		cfg.Origin = ""
	case "theme":
		cfg.Theme = ""
	case "auto_copy":
		cfg.AutoCopy = nil
	case "auto_open":
		cfg.AutoOpen = nil
	case "animate":
		cfg.Animate = nil
	case "history_backend":
		cfg.HistoryBackend = ""
	case "redis_url":
		cfg.RedisURL = ""
	}

	return nil
}

// KnownKeys returns a sorted list of valid config key names.
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// HistoryOptions resolves where the history log is stored.
func (cfg *Config) HistoryOptions() (history.Options, error) {
	opts := history.Options{Backend: history.BackendFile}
	if cfg != nil {
		if cfg.HistoryBackend != "" {
			opts.Backend = cfg.HistoryBackend
		}

		opts.RedisURL = cfg.RedisURL
	}

	if opts.Backend == history.BackendRedis {
		return opts, nil
	}

	dir, err := HistoryDir()
	if err != nil {
		return opts, err
	}

	opts.Dir = filepath.Join(dir, opts.Backend)

	return opts, nil
}

// --- Context helpers ---

type ctxKey struct{}

// WithConfig stores a Config in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the Config from the context.
func FromContext(ctx context.Context) *Config {
	if v := ctx.Value(ctxKey{}); v != nil {
		if cfg, ok := v.(*Config); ok {
			return cfg
		}
	}

	return nil
}
