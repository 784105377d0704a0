package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file path.
const EnvConfigPath = "BATTLECORE_CONFIG"

// Server holds all configuration for the battle server.
type Server struct {
	// Network
	BindAddress   string        `yaml:"bind_address" toml:"bind_address"`
	Port          int           `yaml:"port" toml:"port"`
	ReadTimeout   time.Duration `yaml:"read_timeout" toml:"read_timeout"`       // idle client disconnect (default: 120s)
	WriteTimeout  time.Duration `yaml:"write_timeout" toml:"write_timeout"`     // per-write deadline (default: 5s)
	SendQueueSize int           `yaml:"send_queue_size" toml:"send_queue_size"` // per-client outbox capacity (default: 256)

	// Database
	Database DatabaseConfig `yaml:"database" toml:"database"`

	Rates  Rates  `yaml:"rates" toml:"rates"`
	Combat Combat `yaml:"combat" toml:"combat"`

	// Static data and scripts
	DataDir    string `yaml:"data_dir" toml:"data_dir"`
	ScriptsDir string `yaml:"scripts_dir" toml:"scripts_dir"`
	Language   string `yaml:"language" toml:"language"` // BCP 47 tag, e.g. "en", "fr"

	// Logging
	LogLevel  string `yaml:"log_level" toml:"log_level"`   // debug|info|warn|error
	LogFormat string `yaml:"log_format" toml:"log_format"` // text|json
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Host     string `yaml:"host" toml:"host"`
	Port     int    `yaml:"port" toml:"port"`
	User     string `yaml:"user" toml:"user"`
	Password string `yaml:"password" toml:"password"`
	DBName   string `yaml:"dbname" toml:"dbname"`
	SSLMode  string `yaml:"sslmode" toml:"sslmode"`

	FlushInterval time.Duration `yaml:"flush_interval" toml:"flush_interval"` // periodic progress save (default: 5m)
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		BindAddress:   "0.0.0.0",
		Port:          4010,
		ReadTimeout:   120 * time.Second,
		WriteTimeout:  5 * time.Second,
		SendQueueSize: 256,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "battlecore",
			Password: "battlecore",
			DBName:   "battlecore",
			SSLMode:  "disable",

			FlushInterval: 5 * time.Minute,
		},
		Rates:      DefaultRates(),
		Combat:     DefaultCombat(),
		DataDir:    "data",
		ScriptsDir: "scripts",
		Language:   "en",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load loads server config from a YAML or TOML file, chosen by extension.
// If the file doesn't exist, returns defaults.
func Load(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.Combat.validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolvePath returns the config path from the environment, falling back to def.
func ResolvePath(def string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return def
}
