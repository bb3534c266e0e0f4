package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neriyabudraham/mysql-connective/tabular"
)

// Config is the YAML configuration file. Flags override what the file
// sets; a missing file yields plain defaults.
type Config struct {
	Provider   ProviderSection   `yaml:"provider"`
	Connection ConnectionSection `yaml:"connection"`
	Serve      ServeSection      `yaml:"serve"`
	Session    SessionSection    `yaml:"session"`
}

type ProviderSection struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	Seed    int64  `yaml:"seed"`
}

type ConnectionSection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type ServeSection struct {
	Addr            string `yaml:"addr"`
	DefaultPageSize int    `yaml:"default_page_size"`
}

type SessionSection struct {
	File   string `yaml:"file"`
	UserID string `yaml:"user_id"`
}

func defaultConfig() Config {
	return Config{
		Provider: ProviderSection{Name: "mock", Seed: 1},
		Connection: ConnectionSection{
			Host:     "localhost",
			Port:     3306,
			Username: "root",
			Database: "demo",
		},
		Serve:   ServeSection{Addr: ":8090", DefaultPageSize: 25},
		Session: SessionSection{UserID: "default"},
	}
}

// LoadConfig reads the YAML file at path on top of the defaults. An
// empty path or a missing file returns the defaults untouched.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Provider.Name {
	case "mock", "generated":
	case "rest":
		if c.Provider.BaseURL == "" {
			return fmt.Errorf("provider %q requires base_url", c.Provider.Name)
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider.Name)
	}

	if c.Serve.DefaultPageSize < 0 {
		return fmt.Errorf("default_page_size must not be negative")
	}
	return nil
}

// ConnectParams converts the connection section into provider
// parameters.
func (c Config) ConnectParams() tabular.ConnectParams {
	return tabular.ConnectParams{
		Host:     c.Connection.Host,
		Port:     c.Connection.Port,
		Username: c.Connection.Username,
		Password: c.Connection.Password,
		Database: c.Connection.Database,
	}
}

// BuildProvider constructs the configured provider from a registry of
// the known variants.
func BuildProvider(cfg Config) (tabular.Provider, error) {
	registry := tabular.NewRegistry()
	registry.Register(tabular.NewMockProvider())
	registry.Register(tabular.NewGeneratedProvider(cfg.Provider.Seed))
	registry.Register(tabular.NewRESTProvider(cfg.Provider.BaseURL, nil))

	provider, exists := registry.Get(cfg.Provider.Name)
	if !exists {
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider.Name)
	}
	return provider, nil
}
