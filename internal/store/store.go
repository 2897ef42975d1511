// Package store loads and saves the ordered category table used by the
// classifier.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"

	"gopkg.in/yaml.v3"
)

// ErrNoCategoriesFile is returned by LoadCategories when no file is configured.
var ErrNoCategoriesFile = errors.New("no categories file configured")

// CategoryStore manages loading and saving of the category table.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store for the given categories file. An empty
// path means the built-in table is used.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".statement-parser", filename),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".statement-parser", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories reads the ordered category list. Both a top-level
// "categories:" key and a bare YAML list are accepted. File order is kept
// because it is the match priority.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if strings.TrimSpace(s.CategoriesFile) == "" {
		return nil, ErrNoCategoriesFile
	}

	filePath, err := s.FindConfigFile(s.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("categories file %s: %w", s.CategoriesFile, err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	categories, err := decodeCategories(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}
	if err := validateCategories(categories); err != nil {
		return nil, fmt.Errorf("invalid categories file %s: %w", filePath, err)
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(categories)},
	).Debug("Loaded category table")

	return categories, nil
}

// SaveCategories writes categories under a top-level "categories:" key.
func (s *CategoryStore) SaveCategories(categories []models.CategoryConfig) error {
	if strings.TrimSpace(s.CategoriesFile) == "" {
		return ErrNoCategoriesFile
	}
	if err := validateCategories(categories); err != nil {
		return err
	}

	dir := filepath.Dir(s.CategoriesFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(models.CategoriesConfig{Categories: categories})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}

	if err := os.WriteFile(s.CategoriesFile, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: s.CategoriesFile},
		logging.Field{Key: logging.FieldCount, Value: len(categories)},
	).Info("Saved category table")
	return nil
}

func decodeCategories(data []byte) ([]models.CategoryConfig, error) {
	var wrapped models.CategoriesConfig
	wrappedErr := yaml.Unmarshal(data, &wrapped)
	if wrappedErr == nil && len(wrapped.Categories) > 0 {
		return wrapped.Categories, nil
	}

	var list []models.CategoryConfig
	if err := yaml.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	if wrappedErr != nil {
		return nil, wrappedErr
	}
	return nil, errors.New("no categories found")
}

func validateCategories(categories []models.CategoryConfig) error {
	if len(categories) == 0 {
		return errors.New("category table is empty")
	}
	seen := make(map[string]bool, len(categories))
	for i, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("category %d has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("category %s is listed twice", name)
		}
		seen[name] = true

		if len(c.Keywords) == 0 {
			return fmt.Errorf("category %s has no keywords", name)
		}
		for _, kw := range c.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("category %s has an empty keyword", name)
			}
		}
	}
	return nil
}
