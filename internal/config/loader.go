package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "PACEBENCH_"
	configEnvVar = "CONFIG_PATH"
)

// Loader loads configuration from layered sources.
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
	envPrefix   string
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k: koanf.New("."),
		configPaths: []string{
			"config.yaml",
			"config/config.yaml",
			"/etc/pacebench/config.yaml",
		},
		envPrefix: envPrefix,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

type LoaderOption func(*Loader)

func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) { l.configPaths = paths }
}

func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.envPrefix = prefix }
}

// Load applies, in priority order: defaults, config file, environment.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := l.loadConfigFile(); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (l *Loader) loadDefaults() error {
	defaults := map[string]any{
		"app.name":        "pacebench",
		"app.version":     "1.0.0",
		"app.environment": "development",
		"app.debug":       false,

		"http.port":                   8080,
		"http.read_timeout":           30 * time.Second,
		"http.write_timeout":          30 * time.Second,
		"http.shutdown_timeout":       10 * time.Second,
		"http.cors.enabled":           true,
		"http.cors.allowed_origins":   []string{"*"},
		"http.cors.allowed_methods":   []string{"GET", "POST", "OPTIONS"},
		"http.cors.allowed_headers":   []string{"*"},
		"http.cors.allow_credentials": false,
		"http.cors.max_age":           86400,

		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.max_size":    100,
		"log.max_backups": 3,
		"log.max_age":     7,
		"log.compress":    true,

		"metrics.enabled":   true,
		"metrics.port":      9090,
		"metrics.path":      "/metrics",
		"metrics.namespace": "pacebench",
		"metrics.subsystem": "",

		"tracing.enabled":      false,
		"tracing.endpoint":     "localhost:4317",
		"tracing.service_name": "pacebench",
		"tracing.sample_rate":  0.1,

		"database.host":              "localhost",
		"database.port":              5432,
		"database.database":          "pacebench",
		"database.username":          "postgres",
		"database.password":          "",
		"database.ssl_mode":          "disable",
		"database.max_open_conns":    25,
		"database.max_idle_conns":    5,
		"database.conn_max_lifetime": 5 * time.Minute,
		"database.conn_max_idle_time": 5 * time.Minute,
		"database.auto_migrate":      true,
		"database.migrations_path":   "migrations",
		"database.statement_timeout": 30 * time.Second,

		"rate_limit.enabled":  true,
		"rate_limit.requests": 60,
		"rate_limit.window":   time.Minute,
		"rate_limit.backend":  "memory",

		"audit.enabled":      true,
		"audit.backend":      "stdout",
		"audit.buffer_size":  1000,
		"audit.flush_period": 5 * time.Second,

		"admin.enabled":    true,
		"admin.jwt_secret": "",

		"ingest.max_upload_bytes":    100 * 1024 * 1024, // spec.md §5: ~100 MiB cap
		"ingest.default_page_limit": 100,
		"ingest.max_page_limit":     1000,
	}

	return l.k.Load(confmap.Provider(defaults, "."), nil)
}

func (l *Loader) loadConfigFile() error {
	if configPath := os.Getenv(configEnvVar); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return l.k.Load(file.Provider(configPath), yaml.Parser())
		}
	}

	for _, path := range l.configPaths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}

		if _, err := os.Stat(absPath); err == nil {
			return l.k.Load(file.Provider(absPath), yaml.Parser())
		}
	}

	return fmt.Errorf("config file not found in paths: %v", l.configPaths)
}

func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, l.envPrefix)),
			"_", ".",
		)
	}), nil)
}

func MustLoad(opts ...LoaderOption) *Config {
	cfg, err := NewLoader(opts...).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func Load() (*Config, error) {
	return NewLoader().Load()
}
