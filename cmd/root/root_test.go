package root

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/logging"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "statement-parser", Cmd.Use)
	assert.Contains(t, Cmd.Short, "bank statement PDFs")
	assert.NotNil(t, Cmd.RunE)
	assert.NotNil(t, Cmd.PersistentPreRunE)
	assert.True(t, Cmd.SilenceUsage)
}

func TestRootCommand_Flags(t *testing.T) {
	Init()
	Init()

	input := Cmd.PersistentFlags().Lookup("input")
	require.NotNil(t, input)
	assert.Equal(t, "i", input.Shorthand)

	output := Cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)

	assert.NotNil(t, Cmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, Cmd.PersistentFlags().Lookup("categories"))
}

func TestApplyFlagOverrides(t *testing.T) {
	t.Cleanup(func() {
		LogLevel = ""
		CategoriesFile = ""
	})

	cfg := config.DefaultConfig()
	applyFlagOverrides(cfg)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Categories.File)

	LogLevel = "debug"
	CategoriesFile = "mine.yaml"
	applyFlagOverrides(cfg)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "mine.yaml", cfg.Categories.File)
}

func TestInitialize_KeepsInstalledContainer(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(config.DefaultConfig(), logger)
	require.NoError(t, err)

	SetContainer(c)
	t.Cleanup(func() { SetContainer(nil) })

	require.NoError(t, initialize(Cmd, nil))
	assert.Same(t, c, GetContainer())
	assert.Equal(t, logger, GetLogger())
}

func TestGetLogger_WithoutContainer(t *testing.T) {
	SetContainer(nil)
	assert.NotNil(t, GetLogger())
}
