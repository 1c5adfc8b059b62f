// Package config manages YAML-based configuration and CLI flags.
package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the server.
type Config struct {
	// Root is the directory served as the virtual filesystem root.
	Root string `yaml:"root"`

	// Ref, when set, serves the tree of this git ref instead of the
	// working tree (read-only snapshot mode).
	Ref string `yaml:"ref,omitempty"`

	Port     int    `yaml:"port"`
	Open     bool   `yaml:"open"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Root:     ".",
		Port:     7070,
		Open:     false,
		LogLevel: "info",
	}
}

// ConfigFileName is the per-project config file looked up in the working directory.
const ConfigFileName = "fs-server.yaml"

// Load loads configuration from file and command line flags.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Sentinel defaults so we can tell set flags from unset ones.
	root := flag.String("root", "", "Directory served as the filesystem root")
	ref := flag.String("ref", "", "Serve the tree of this git ref instead of the working tree")
	port := flag.Int("port", 0, "HTTP server port")
	open := flag.Bool("open", false, "Open browser on startup")
	logLevel := flag.String("log-level", "", "Log level (debug/info/warn/error)")
	configFile := flag.String("config", "", "Configuration file path")

	flag.StringVar(root, "r", "", "Directory served as the filesystem root (shorthand)")

	flag.Parse()

	cfgPath := *configFile
	if cfgPath == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			cfgPath = ConfigFileName
		}
	}
	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil {
			// Only fail when the user explicitly asked for this file.
			if *configFile != "" {
				return nil, err
			}
			log.Printf("Warning: ignoring config file %s: %v", cfgPath, err)
		}
	}

	// Command line flags override the config file.
	if *root != "" {
		cfg.Root = *root
	}
	if *ref != "" {
		cfg.Ref = *ref
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *open {
		cfg.Open = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	cfg.resolveRoot()
	return cfg, nil
}

// resolveRoot makes the root path absolute.
func (c *Config) resolveRoot() {
	if abs, err := filepath.Abs(c.Root); err == nil {
		c.Root = abs
	}
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}
