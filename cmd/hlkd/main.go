package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hashlink/hlkd/pkg/config"
	"github.com/hashlink/hlkd/pkg/core/hashing"
	"github.com/hashlink/hlkd/pkg/core/headerchain"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hlkd",
	Short: "hashlink header chain node",
	Long: `hlkd maintains a hash-linked chain of block headers: each header
commits to its predecessor by digest, and any candidate extension can be
verified against a trusted header.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(extendCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hlkd/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().String("datadir", config.DefaultConfig.DataDir, "Data directory for chain data")
	rootCmd.PersistentFlags().String("rpcaddr", config.DefaultConfig.RPCAddr, "RPC listen address")
	rootCmd.PersistentFlags().Int("rpcport", config.DefaultConfig.RPCPort, "RPC listen port")
	rootCmd.PersistentFlags().String("hashalgo", config.DefaultConfig.HashAlgo, "Header hash algorithm (dsha256, blake2b)")
	rootCmd.PersistentFlags().String("log_level", config.DefaultConfig.LogLevel, "Logging level (debug, info, warn, error, fatal)")

	viper.BindPFlag("datadir", rootCmd.PersistentFlags().Lookup("datadir"))
	viper.BindPFlag("rpcaddr", rootCmd.PersistentFlags().Lookup("rpcaddr"))
	viper.BindPFlag("rpcport", rootCmd.PersistentFlags().Lookup("rpcport"))
	viper.BindPFlag("hashalgo", rootCmd.PersistentFlags().Lookup("hashalgo"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))
}

// initConfig reads the config file and environment variables if present.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".hlkd"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HLKD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		fmt.Fprintf(os.Stderr, "Error reading config file %q: %v\n", viper.ConfigFileUsed(), err)
	}
}

// setup resolves configuration and builds the logger and engine every
// subcommand starts from.
func setup() (*config.Config, *logrus.Logger, *headerchain.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logrus.New()
	log.SetLevel(cfg.ParseLogLevel())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	hasher, err := hashing.New(cfg.HashAlgo)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, log, headerchain.NewEngine(hasher), nil
}

// openChain opens the store and rebuilds the in-memory chain from it.
func openChain(cfg *config.Config, engine *headerchain.Engine) (*headerchain.Chain, *headerchain.BadgerStore, error) {
	store, err := headerchain.NewBadgerStore(cfg.ChainDir())
	if err != nil {
		return nil, nil, fmt.Errorf("open header store: %w", err)
	}

	chain, err := headerchain.LoadChain(engine, store)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("load chain: %w", err)
	}
	return chain, store, nil
}
