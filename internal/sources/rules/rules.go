package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule maps a category label to the keywords that trigger it.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Classifier assigns category labels to bookmark text by case-insensitive
// keyword matching. A nil Classifier is valid and assigns nothing.
type Classifier struct {
	rules []compiledRule
}

type compiledRule struct {
	category string
	keywords []string // lowercased
}

// Load reads a YAML rules file and builds a classifier.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules yaml: %w", err)
	}

	return NewClassifier(rules), nil
}

// NewClassifier builds a classifier from in-memory rules.
// Rules without a category or without keywords are skipped.
func NewClassifier(rules []Rule) *Classifier {
	c := &Classifier{}
	for _, r := range rules {
		if r.Category == "" || len(r.Keywords) == 0 {
			continue
		}
		compiled := compiledRule{category: r.Category}
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				compiled.keywords = append(compiled.keywords, kw)
			}
		}
		if len(compiled.keywords) > 0 {
			c.rules = append(c.rules, compiled)
		}
	}
	return c
}

// Categorize returns the labels whose keywords appear in text.
// Each category appears at most once, in rule order.
func (c *Classifier) Categorize(text string) []string {
	if c == nil || len(c.rules) == 0 || text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var categories []string
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				categories = append(categories, r.category)
				break
			}
		}
	}
	return categories
}
