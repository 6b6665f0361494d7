package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/hashlink/hlkd/pkg/core/hashing"
)

// Config holds all configuration for the node. Tags are used by viper to map
// config file keys and environment variables.
type Config struct {
	// Node configuration
	DataDir string `mapstructure:"datadir"`
	RPCAddr string `mapstructure:"rpcaddr"`
	RPCPort int    `mapstructure:"rpcport"`

	// Chain configuration
	HashAlgo string `mapstructure:"hashalgo"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
}

// DefaultConfig holds the default values; CLI flags and the config file
// override them through viper.
var DefaultConfig = Config{
	DataDir:  "./hlkd-data",
	RPCAddr:  "0.0.0.0",
	RPCPort:  8645,
	HashAlgo: hashing.AlgoDoubleSHA256,
	LogLevel: "info",
}

// Load resolves the effective configuration from defaults, config file,
// environment, and bound flags, then validates it and creates the data
// directory.
func Load() (*Config, error) {
	cfg := DefaultConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir cannot be empty")
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %q: %w", cfg.DataDir, err)
	}

	if cfg.RPCPort <= 0 || cfg.RPCPort > 65535 {
		return fmt.Errorf("invalid RPC port: %d", cfg.RPCPort)
	}

	if _, err := hashing.New(cfg.HashAlgo); err != nil {
		return err
	}
	return nil
}

// ChainDir returns the subdirectory holding the header store.
func (c *Config) ChainDir() string {
	return filepath.Join(c.DataDir, "chaindata")
}

// RPCListenAddr returns the host:port the RPC server binds to.
func (c *Config) RPCListenAddr() string {
	return fmt.Sprintf("%s:%d", c.RPCAddr, c.RPCPort)
}

// ParseLogLevel maps the configured level to a logrus level, defaulting to
// info on unknown input.
func (c *Config) ParseLogLevel() logrus.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "trace":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		logrus.Warnf("unknown log_level %q, defaulting to info", c.LogLevel)
		return logrus.InfoLevel
	}
}
