package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds CyberGuard configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Rules   RulesConfig   `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
	Audit   AuditConfig   `yaml:"audit"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address, e.g. ":8080"
}

type RulesConfig struct {
	Path       string `yaml:"path"`        // ruleset file; empty uses the embedded bundle
	Watch      bool   `yaml:"watch"`       // reload when the file changes
	DebounceMS int    `yaml:"debounce_ms"` // watcher debounce window
}

type LoggingConfig struct {
	Level      string `yaml:"level"`       // debug | info | warn | error
	PreviewLen int    `yaml:"preview_len"` // max runes of redacted message preview; -1 disables
}

type AuditConfig struct {
	QueueSize int          `yaml:"queue_size"`
	Workers   int          `yaml:"workers"`
	Sinks     []SinkConfig `yaml:"sinks"`
}

type SinkConfig struct {
	Type string `yaml:"type"` // stdout | file_jsonl
	Path string `yaml:"path"` // required for file_jsonl
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	if cfg.Rules.DebounceMS <= 0 {
		cfg.Rules.DebounceMS = 200
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.PreviewLen == 0 {
		cfg.Logging.PreviewLen = 48
	}

	if cfg.Audit.QueueSize <= 0 {
		cfg.Audit.QueueSize = 1000
	}
	if cfg.Audit.Workers <= 0 {
		cfg.Audit.Workers = 1
	}
}
