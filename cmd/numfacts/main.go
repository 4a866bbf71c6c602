package main

import (
	"fmt"
	"os"
	"time"

	"numfacts/internal/config"
	"numfacts/internal/facts"
	"numfacts/internal/factservice"
	"numfacts/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.3.0"

var (
	// Global flags
	verbose    bool
	configPath string
	endpoint   string
	timeout    time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "numfacts",
	Short:   "numfacts - facts about numbers from the numbers API",
	Version: version,
	Long: `numfacts looks up trivia, math and year facts about numbers.

Run without arguments to start the interactive screen: type a number,
pick a category with tab, and press enter.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive screen owns the terminal and logs through
		// internal/logging only.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./.numfacts/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Numbers API base URL (overrides config)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Overall timeout for headless commands")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads .env, the config file and flag overrides, then validates.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if endpoint != "" {
		cfg.Service.Endpoint = endpoint
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// newService builds the live fact service from cfg.
func newService(cfg *config.Config) *factservice.HTTPService {
	return factservice.NewHTTPService(cfg.Service.Endpoint,
		factservice.WithTimeout(cfg.GetTimeout()),
		factservice.WithUserAgent("numfacts/"+version),
	)
}

// initialState is the screen's starting state from cfg.
func initialState(cfg *config.Config) facts.State {
	s := facts.NewState(cfg.Screen.Label)
	if cfg.Screen.DefaultCategory != "" {
		s.Picker.Selected = cfg.Screen.DefaultCategory
	}
	return s
}

// startLogging wires internal/logging from cfg; verbose forces debug mode.
func startLogging(cfg *config.Config) error {
	opts := cfg.Logging.Options()
	if verbose {
		opts.DebugMode = true
		opts.Level = "debug"
	}
	if err := logging.Initialize(opts); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}
