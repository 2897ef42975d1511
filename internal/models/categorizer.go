package models

// CategoryConfig is one ordered (category, keywords) rule, as stored in the
// categories YAML file.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file.
// The list order is the match priority.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
