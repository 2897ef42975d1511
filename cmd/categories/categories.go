// Package categories implements commands inspecting and seeding the
// keyword category table.
package categories

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fjacquet/statement-parser/cmd/root"
	"fjacquet/statement-parser/internal/categorizer"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/store"
)

var force bool

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Inspect or seed the category table",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the active category table as YAML, in match order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return List(root.GetContainer().GetClassifier(), cmd.OutOrStdout())
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in category table to a YAML file for editing",
	Long: `Write the built-in category table to --output, or to categories.file from
the configuration. Point categories.file (or --categories) at the result to
use an edited table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		path := root.SharedFlags.Output
		if path == "" {
			path = c.GetConfig().Categories.File
		}
		return Init(path, force, c.GetLogger())
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	Cmd.AddCommand(listCmd, initCmd)
}

// List writes the classifier's rules to out.
func List(classifier *categorizer.Classifier, out io.Writer) error {
	data, err := yaml.Marshal(models.CategoriesConfig{Categories: classifier.Rules()})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// Init saves the default table to path. An existing file is kept unless
// overwrite is set.
func Init(path string, overwrite bool, logger logging.Logger) error {
	if path == "" {
		return errors.New("no destination, pass --output or set categories.file")
	}
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	return store.NewCategoryStore(path, logger).SaveCategories(categorizer.DefaultRules())
}
