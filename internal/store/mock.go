package store

import (
	"fjacquet/statement-parser/internal/models"
)

// MockCategoryStore is a mock implementation of CategoryStore for testing.
type MockCategoryStore struct {
	Categories []models.CategoryConfig

	LoadCategoriesError error
	SaveCategoriesError error

	Saved [][]models.CategoryConfig
}

// LoadCategories returns the mock categories.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	out := make([]models.CategoryConfig, len(m.Categories))
	copy(out, m.Categories)
	return out, nil
}

// SaveCategories records the saved table.
func (m *MockCategoryStore) SaveCategories(categories []models.CategoryConfig) error {
	if m.SaveCategoriesError != nil {
		return m.SaveCategoriesError
	}
	m.Saved = append(m.Saved, categories)
	return nil
}
