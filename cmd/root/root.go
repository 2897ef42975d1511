// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/logging"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// SharedFlags holds the persistent --input and --output values.
	SharedFlags = CommonFlags{}

	// LogLevel overrides log.level when set.
	LogLevel string
	// CategoriesFile overrides categories.file when set.
	CategoriesFile string

	appContainer *container.Container
	mu           sync.RWMutex
	initOnce     sync.Once

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "statement-parser",
		Short: "Extract, validate and categorize transactions from bank statement PDFs.",
		Long: `statement-parser reads bank statement PDFs, extracts the transaction rows
from their tables (falling back to line-by-line text matching), then cleans,
validates and categorizes them and exports the result as JSON, CSV or XLSX.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initialize,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when empty)")
		Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
		Cmd.PersistentFlags().StringVar(&CategoriesFile, "categories", "", "Category table YAML file")
	})
}

// initialize loads configuration and builds the container once per process.
// A container installed with SetContainer is kept.
func initialize(cmd *cobra.Command, args []string) error {
	if GetContainer() != nil {
		return nil
	}

	config.LoadEnv(logging.NewLogrusAdapter("warn", "text"))

	cfg, err := config.InitializeConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	SetContainer(c)
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
	if CategoriesFile != "" {
		cfg.Categories.File = CategoriesFile
	}
}

// GetContainer returns the application container, or nil before the root
// command has run its pre-run hook.
func GetContainer() *container.Container {
	mu.RLock()
	defer mu.RUnlock()
	return appContainer
}

// SetContainer installs c as the application container.
func SetContainer(c *container.Container) {
	mu.Lock()
	defer mu.Unlock()
	appContainer = c
}

// GetLogger returns the container logger, or a default logrus adapter when
// no container has been built yet.
func GetLogger() logging.Logger {
	if c := GetContainer(); c != nil {
		return c.GetLogger()
	}
	return logging.NewLogrusAdapter("info", "text")
}
