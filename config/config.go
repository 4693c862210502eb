// Package config loads the YAML configuration shared by the reducer
// binaries and wires the grammar tables, lexicon and reducer from it.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Environment variables overriding configuration values.
const (
	EnvAddr      = "REDUCER_ADDR"
	EnvLogLevel  = "REDUCER_LOG_LEVEL"
	EnvCacheSize = "REDUCER_CACHE_SIZE"
)

// Config is the complete configuration.
type Config struct {
	Tables  TablesConfig  `yaml:"tables"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// TablesConfig names the scoring table files. Empty paths leave the
// corresponding table empty.
type TablesConfig struct {
	Preferences   string `yaml:"preferences"`
	Verbs         string `yaml:"verbs"`
	GrammarScores string `yaml:"grammar_scores"`
}

// LexiconConfig configures the meaning provider. Without Dir no lexicon
// is loaded and forest documents must carry their token meanings.
type LexiconConfig struct {
	// Dir is the lexicon data directory.
	Dir string `yaml:"dir"`
	// StoreDir, when set, serves word forms from a badger store there
	// instead of loading the word form file into memory.
	StoreDir string `yaml:"store_dir"`
	// Import loads the word form file of Dir into the store on startup.
	Import bool `yaml:"import"`
	// CacheSize bounds the lookup cache; 0 disables it.
	CacheSize int `yaml:"cache_size" validate:"gte=0"`
}

// ServerConfig configures cmd/server.
type ServerConfig struct {
	Addr           string   `yaml:"addr" validate:"required"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,required"`
	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" validate:"gt=0"`
}

// LogConfig configures the logger built by NewLogger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Lexicon: LexiconConfig{CacheSize: 512},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   1 << 20,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

var validate = validator.New()

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Lexicon.Import && (c.Lexicon.StoreDir == "" || c.Lexicon.Dir == "") {
		return fmt.Errorf("%w: lexicon.import needs lexicon.dir and lexicon.store_dir", ErrInvalid)
	}
	return nil
}

// Load reads the YAML file at path over the defaults, applies
// environment overrides and validates the result. Relative paths in the
// file are taken relative to the file's directory. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.resolvePaths(filepath.Dir(path))
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{
		&c.Tables.Preferences,
		&c.Tables.Verbs,
		&c.Tables.GrammarScores,
		&c.Lexicon.Dir,
		&c.Lexicon.StoreDir,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvCacheSize, v)
		}
		c.Lexicon.CacheSize = n
	}
	return nil
}

// SlogLevel returns the slog level named by the configuration.
func (lc LogConfig) SlogLevel() slog.Level {
	switch lc.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text or JSON logger writing to w.
func NewLogger(w io.Writer, lc LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
