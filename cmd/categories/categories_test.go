package categories

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fjacquet/statement-parser/internal/categorizer"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/store"
)

func TestList_DefaultTableInOrder(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, List(categorizer.NewDefaultClassifier(logging.NewMockLogger()), &out))

	var decoded models.CategoriesConfig
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded.Categories, len(categorizer.DefaultRules()))
	assert.Equal(t, models.CategorySalary, decoded.Categories[0].Name)
	assert.Equal(t, models.CategorySubscription, decoded.Categories[len(decoded.Categories)-1].Name)
}

func TestInit_WritesLoadableTable(t *testing.T) {
	logger := logging.NewMockLogger()
	path := filepath.Join(t.TempDir(), "conf", "categories.yaml")

	require.NoError(t, Init(path, false, logger))
	assert.True(t, logger.HasEntry("INFO", "Saved category table"))

	loaded, err := store.NewCategoryStore(path, logger).LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, categorizer.DefaultRules(), loaded)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0600))

	err := Init(path, false, logging.NewMockLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true, logging.NewMockLogger()))
}

func TestInit_NoDestination(t *testing.T) {
	err := Init("", false, logging.NewMockLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no destination")
}

func TestCommandTree(t *testing.T) {
	names := []string{}
	for _, c := range Cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "init"}, names)
}
