package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/statement-parser/internal/logging"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. STMT_LOG_LEVEL for log.level.
const EnvPrefix = "STMT"

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig configures CSV export.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// PDFConfig holds the layout heuristics used to rebuild tables from glyph
// positions and the text fallback policy.
type PDFConfig struct {
	ColumnGap       float64 `mapstructure:"column_gap" yaml:"column_gap"`
	WordGap         float64 `mapstructure:"word_gap" yaml:"word_gap"`
	RowTolerance    float64 `mapstructure:"row_tolerance" yaml:"row_tolerance"`
	MinTableColumns int     `mapstructure:"min_table_columns" yaml:"min_table_columns"`
	FallbackPolicy  string  `mapstructure:"fallback_policy" yaml:"fallback_policy"`
}

// CategoriesConfig points at an optional category table file.
type CategoriesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ExportConfig selects the output format of the convert pipeline.
type ExportConfig struct {
	Format    string `mapstructure:"format" yaml:"format"`
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address     string `mapstructure:"address" yaml:"address"`
	BodyLimitMB int    `mapstructure:"body_limit_mb" yaml:"body_limit_mb"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	CSV        CSVConfig        `mapstructure:"csv" yaml:"csv"`
	PDF        PDFConfig        `mapstructure:"pdf" yaml:"pdf"`
	Categories CategoriesConfig `mapstructure:"categories" yaml:"categories"`
	Export     ExportConfig     `mapstructure:"export" yaml:"export"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
}

// Export formats accepted by export.format.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// InitializeConfig loads configuration in order of increasing precedence:
// defaults, config.yaml, then STMT_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.statement-parser")
	v.AddConfigPath(".statement-parser")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("pdf.column_gap", 10.0)
	v.SetDefault("pdf.word_gap", 1.0)
	v.SetDefault("pdf.row_tolerance", 2.0)
	v.SetDefault("pdf.min_table_columns", 3)
	v.SetDefault("pdf.fallback_policy", "cumulative")

	v.SetDefault("categories.file", "")

	v.SetDefault("export.format", FormatCSV)
	v.SetDefault("export.sheet_name", "Transactions")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.body_limit_mb", 20)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.PDF.ColumnGap <= 0 {
		return fmt.Errorf("pdf.column_gap must be positive, got: %g", config.PDF.ColumnGap)
	}
	if config.PDF.WordGap < 0 || config.PDF.WordGap >= config.PDF.ColumnGap {
		return fmt.Errorf("pdf.word_gap must be between 0 and pdf.column_gap, got: %g", config.PDF.WordGap)
	}
	if config.PDF.RowTolerance < 0 {
		return fmt.Errorf("pdf.row_tolerance must not be negative, got: %g", config.PDF.RowTolerance)
	}
	if config.PDF.MinTableColumns < 1 {
		return fmt.Errorf("pdf.min_table_columns must be at least 1, got: %d", config.PDF.MinTableColumns)
	}
	switch strings.ToLower(config.PDF.FallbackPolicy) {
	case "", "cumulative", "per_page":
	default:
		return fmt.Errorf("invalid pdf.fallback_policy: %s (must be 'cumulative' or 'per_page')", config.PDF.FallbackPolicy)
	}

	switch strings.ToLower(config.Export.Format) {
	case FormatCSV, FormatXLSX, FormatJSON:
	default:
		return fmt.Errorf("invalid export format: %s (must be 'csv', 'xlsx' or 'json')", config.Export.Format)
	}
	if strings.TrimSpace(config.Export.SheetName) == "" {
		return fmt.Errorf("export.sheet_name must not be empty")
	}

	if config.Server.BodyLimitMB < 1 || config.Server.BodyLimitMB > 1024 {
		return fmt.Errorf("server.body_limit_mb must be between 1 and 1024, got: %d", config.Server.BodyLimitMB)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the log section.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
