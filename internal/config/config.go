package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dancectl", "config.yml")
}

// Load reads the config from disk (or env). A missing file yields a config
// of defaults rooted in the current directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("collection.root", ".")
	v.SetDefault("collection.dances_dir", "Dances")
	v.SetDefault("collection.catalog_path", filepath.Join("DanceStates", "DanceInfo", "dances.json"))
	v.SetDefault("remote.retries", 2)
	v.SetDefault("remote.timeout_seconds", 5)

	v.SetEnvPrefix("DANCECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("DANCECTL_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		// No config file is fine; defaults cover a collection rooted
		// in the working directory.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Collection.Root = ExpandHome(cfg.Collection.Root)
	return &cfg, nil
}

// Save writes the config to path (DefaultPath when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DancesRoot returns the absolute directory the scanner walks.
func (c *Config) DancesRoot() string {
	return filepath.Join(c.Collection.Root, c.Collection.DancesDir)
}

// CatalogFile returns the absolute path of the local catalog file.
func (c *Config) CatalogFile() string {
	if filepath.IsAbs(c.Collection.CatalogPath) {
		return c.Collection.CatalogPath
	}
	return filepath.Join(c.Collection.Root, c.Collection.CatalogPath)
}

// RemoteTimeout returns the per-attempt mirror timeout.
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}
