package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"stockprofit/internal/config"
	"stockprofit/internal/form"
	"stockprofit/internal/logging"
	"stockprofit/internal/prediction"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	endpoint   string
	timeout    time.Duration

	// Effective configuration, resolved before any command runs
	cfg *config.Config

	// Logger
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stockprofit",
	Short: "Stock Profit Calculator",
	Long: `stockprofit asks a prediction service what a past stock purchase
would be worth and types the answer out one character at a time.

Run without arguments to open the interactive form.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Prediction endpoint URL (or set STOCKPROFIT_ENDPOINT)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (0: no timeout)")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfigPath returns the config file every command reads.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath
}

// loadRuntime resolves config (file, env, flags) and starts logging.
func loadRuntime(cmd *cobra.Command, args []string) error {
	path := resolveConfigPath()
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, c)
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := logging.Initialize(loggingOptions(c.Logging)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	cfg = c
	logger = logging.Get(logging.CategoryBoot).Zap()
	logger.Debug("Config resolved",
		zap.String("path", path),
		zap.String("endpoint", c.Endpoint.URL),
		zap.Duration("timeout", c.GetTimeout()))
	return nil
}

// applyFlagOverrides lets explicit flags win over file and environment.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	if endpoint != "" {
		c.Endpoint.URL = endpoint
	}
	if flagChanged(cmd, "timeout") {
		c.Endpoint.Timeout = timeout.String()
	}
	if verbose {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func loggingOptions(l config.LoggingConfig) logging.Options {
	return logging.Options{
		Level:      l.Level,
		File:       l.File,
		DebugMode:  l.DebugMode,
		JSONFormat: l.Format == "json",
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		Categories: l.Categories,
	}
}

// newPredictor builds the prediction client described by c.
func newPredictor(c *config.Config) form.Predictor {
	return prediction.NewClient(prediction.ClientConfig{
		Endpoint:    c.Endpoint.URL,
		Timeout:     c.GetTimeout(),
		ContentType: c.Endpoint.ContentType,
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
