// Package categorizer assigns a category to a transaction description using
// an ordered keyword table.
package categorizer

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/store"

	"github.com/cloudflare/ahocorasick"
)

// CategoryLoader supplies an ordered category table.
type CategoryLoader interface {
	LoadCategories() ([]models.CategoryConfig, error)
}

type rule struct {
	category string
	keywords []string
	matcher  *ahocorasick.Matcher
}

// Classifier maps descriptions to categories. Rules are tested in table
// order and the first rule with any keyword contained in the lower-cased
// description wins. A Classifier is read-only after construction and safe
// for concurrent use.
type Classifier struct {
	rules    []rule
	fallback string
	logger   logging.Logger
}

// NewClassifier compiles one matcher per rule. Blank keywords are dropped and
// a rule left without keywords is rejected.
func NewClassifier(table []models.CategoryConfig, logger logging.Logger) (*Classifier, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if len(table) == 0 {
		return nil, errors.New("category table is empty")
	}

	rules := make([]rule, 0, len(table))
	for _, cfg := range table {
		name := strings.TrimSpace(cfg.Name)
		if name == "" {
			return nil, errors.New("category rule without a name")
		}

		keywords := make([]string, 0, len(cfg.Keywords))
		for _, kw := range cfg.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("category %s has no keywords", name)
		}

		rules = append(rules, rule{
			category: name,
			keywords: keywords,
			matcher:  ahocorasick.NewStringMatcher(keywords),
		})
	}

	logger.WithField(logging.FieldCount, len(rules)).Debug("Compiled category rules")

	return &Classifier{
		rules:    rules,
		fallback: models.CategoryOther,
		logger:   logger,
	}, nil
}

// NewDefaultClassifier returns a classifier over DefaultRules.
func NewDefaultClassifier(logger logging.Logger) *Classifier {
	c, err := NewClassifier(DefaultRules(), logger)
	if err != nil {
		// DefaultRules is a constant table.
		panic(err)
	}
	return c
}

// NewClassifierFromStore loads the table from loader, falling back to
// DefaultRules when no categories file is configured.
func NewClassifierFromStore(loader CategoryLoader, logger logging.Logger) (*Classifier, error) {
	if loader == nil {
		return NewDefaultClassifier(logger), nil
	}

	table, err := loader.LoadCategories()
	if errors.Is(err, store.ErrNoCategoriesFile) {
		return NewDefaultClassifier(logger), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category table: %w", err)
	}

	return NewClassifier(table, logger)
}

// Classify returns the category of the first matching rule, or OTHER.
func (c *Classifier) Classify(description string) string {
	text := []byte(strings.ToLower(description))
	for _, r := range c.rules {
		if r.matcher.Contains(text) {
			return r.category
		}
	}
	return c.fallback
}

// Rules returns a copy of the compiled table in priority order.
func (c *Classifier) Rules() []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(c.rules))
	for i, r := range c.rules {
		out[i] = models.CategoryConfig{
			Name:     r.category,
			Keywords: append([]string(nil), r.keywords...),
		}
	}
	return out
}
