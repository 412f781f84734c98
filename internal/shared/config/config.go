package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names an optional YAML file layered between defaults and env.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// Config holds application configuration.
type Config struct {
	Port            string          `koanf:"port"`
	Env             string          `koanf:"env"`
	CORSAllowOrigin []string        `koanf:"cors_allow_origins"`
	PublicDir       string          `koanf:"public_dir"`
	Analyzer        AnalyzerConfig  `koanf:"analyzer"`
	Log             LogConfig       `koanf:"log"`
	Metrics         MetricsConfig   `koanf:"metrics"`
	RateLimit       RateLimitConfig `koanf:"rate_limit"`
}

// AnalyzerConfig describes how the external script is located and run.
type AnalyzerConfig struct {
	Script         string        `koanf:"script"`
	WorkDir        string        `koanf:"workdir"`
	PythonPath     string        `koanf:"python_path"`
	Candidates     []string      `koanf:"candidates"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxOutputBytes int64         `koanf:"max_output_bytes"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// RateLimitConfig applies to the analyzer-backed endpoints. RPS of zero disables it.
type RateLimitConfig struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}

func defaultConfig() Config {
	return Config{
		Port: "3000",
		Env:  "dev",
		Analyzer: AnalyzerConfig{
			Script:         "bcf_detecter.py",
			Timeout:        30 * time.Second,
			MaxOutputBytes: 1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics:   MetricsConfig{Enabled: true},
		RateLimit: RateLimitConfig{RPS: 0, Burst: 5},
	}
}

var envKeys = map[string]string{
	"PORT":                      "port",
	"ENV":                       "env",
	"CORS_ALLOW_ORIGINS":        "cors_allow_origins",
	"PUBLIC_DIR":                "public_dir",
	"ANALYZER_SCRIPT":           "analyzer.script",
	"ANALYZER_WORKDIR":          "analyzer.workdir",
	"PYTHON_PATH":               "analyzer.python_path",
	"ANALYZER_CANDIDATES":       "analyzer.candidates",
	"ANALYZER_TIMEOUT":          "analyzer.timeout",
	"ANALYZER_MAX_OUTPUT_BYTES": "analyzer.max_output_bytes",
	"LOG_LEVEL":                 "log.level",
	"LOG_FORMAT":                "log.format",
	"METRICS_ENABLED":           "metrics.enabled",
	"RATE_LIMIT_RPS":            "rate_limit.rps",
	"RATE_LIMIT_BURST":          "rate_limit.burst",
}

// envValue maps known variables to config keys. Empty values count as unset.
func envValue(key, value string) (string, interface{}) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return envKeys[key], value
}

// ANALYZER_CANDIDATES uses ';' because a single candidate may contain spaces ("py -3").
var sliceKeys = map[string]string{
	"cors_allow_origins":  ",",
	"analyzer.candidates": ";",
}

// Load reads configuration: defaults, then the optional YAML file, then environment variables.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if err := splitSliceKeys(k); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Analyzer.Script) == "" {
		errs = append(errs, errors.New("analyzer.script is required"))
	}
	if c.Analyzer.Timeout < 0 {
		errs = append(errs, errors.New("analyzer.timeout must not be negative"))
	}
	if c.Analyzer.MaxOutputBytes < 0 {
		errs = append(errs, errors.New("analyzer.max_output_bytes must not be negative"))
	}
	if c.RateLimit.RPS < 0 {
		errs = append(errs, errors.New("rate_limit.rps must not be negative"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("rate_limit.burst must be at least 1 when rate limiting is enabled"))
	}
	return errors.Join(errs...)
}

func findConfigFile() string {
	if p := strings.TrimSpace(os.Getenv(ConfigPathEnvVar)); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitSliceKeys turns delimited env strings into slices; YAML lists pass through.
func splitSliceKeys(k *koanf.Koanf) error {
	for key, sep := range sliceKeys {
		raw, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		if err := k.Set(key, splitAndTrim(raw, sep)); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

func splitAndTrim(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
