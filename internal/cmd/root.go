// Package cmd contains the parksitectl commands.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/parksite/internal/app"
	"github.com/kailas-cloud/parksite/internal/config"
	logpkg "github.com/kailas-cloud/parksite/internal/logger"
)

var (
	cfgFile string
	envName string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "parksitectl",
	Short: "Manage parksite content and query the site search",
	Long: `parksitectl loads content into the configured store and runs the same
search and sitemap code the API server does.

Example usage:
  parksitectl seed --file config/seed.yaml
  parksitectl search cumpleaños
  parksitectl search --server https://www.parquedesaltos.mx malteada
  parksitectl sitemap > public/sitemap.xml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return initConfig() },
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: config/<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "environment name (default: $ENV or local)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// initConfig loads the configuration and the logger once per invocation.
func initConfig() error {
	env := envName
	if env == "" {
		env = config.GetEnv()
	}

	var (
		c   config.Config
		err error
	)
	if cfgFile != "" {
		c, err = config.LoadFile(cfgFile)
	} else {
		c, err = config.Load(env)
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = &c

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err = logpkg.NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	return nil
}

// openApp opens the configured store and wires the services. The in-memory
// store starts empty, so it is filled from seed_file first.
func openApp(ctx context.Context) (*app.App, func(), error) {
	store, err := app.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(cfg, store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	if cfg.Database.Driver == config.DriverMemory && cfg.Database.SeedFile != "" {
		if _, err := a.SeedFile(ctx, cfg.Database.SeedFile); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("seed memory store: %w", err)
		}
	}

	return a, store.Close, nil
}

// commandContext attaches the CLI logger so use cases log through it.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logpkg.ContextWithLogger(ctx, logger)
}
