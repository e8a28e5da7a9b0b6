// Package config provides optional deployment configuration loaded from a
// YAML file. Everything here has a working default; the file only overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the formwright.yaml file.
type Config struct {
	Mailer MailerConfig `yaml:"mailer"`
}

// MailerConfig configures SMTP delivery for the email node. When Host is
// empty the email node stays in log-only mode.
type MailerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Enabled reports whether SMTP delivery is configured.
func (m MailerConfig) Enabled() bool {
	return m.Host != ""
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOrDefault attempts to load the config file, falling back to the zero
// configuration when the file does not exist.
func LoadOrDefault(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		return Config{}
	}

	return cfg
}

// Validate checks cross-field constraints.
func Validate(cfg Config) error {
	if !cfg.Mailer.Enabled() {
		return nil
	}

	if cfg.Mailer.Port == 0 {
		return fmt.Errorf("mailer: port is required when host is set")
	}

	if cfg.Mailer.From == "" {
		return fmt.Errorf("mailer: from address is required when host is set")
	}

	return nil
}
