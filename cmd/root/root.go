// Package root contains the root command for the application
package root

import (
	"fmt"

	"billkaro/statement-ledger/internal/config"
	"billkaro/statement-ledger/internal/container"
	"billkaro/statement-ledger/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	Validate   bool
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger once the root command has initialized.
	Log = logging.NewDiscardLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "billkaro",
		Short: "Convert bank statement PDFs into categorized CSV and Excel ledgers.",
		Long: `billkaro extracts the transactions of SBI, ICICI, HDFC, Kotak and Axis bank
statements, tags each one with a spending category and writes CSV and Excel
ledgers together with a spending summary. It can also run as an HTTP service.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	if flags.Lookup("input") != nil {
		return
	}
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory")
	flags.BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.billkaro, .billkaro and .)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format override (text, json)")
}

func initialize() error {
	config.LoadEnv(nil)

	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	SetContainer(c)
	return nil
}

func shutdown() {
	if appContainer == nil {
		return
	}
	if err := appContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to release resources")
	}
	appContainer = nil
}

// SetContainer installs c as the application container and adopts its
// logger.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetContainer returns the application container, or nil before the root
// command has initialized.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the shared command logger.
func GetLogger() logging.Logger {
	return Log
}

// MustContainer returns the application container or an error explaining
// that initialization has not happened.
func MustContainer() (*container.Container, error) {
	if appContainer == nil {
		return nil, fmt.Errorf("application container is not initialized")
	}
	return appContainer, nil
}
