// Package mapping loads the declarative field-mapping rules that translate
// raw source field names into destination field names.
package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// Config is the field-mapping rule document: four rule groups plus the
// required/optional field lists consumed by the validator, and the ordered
// source fields that feed the merged description.
type Config struct {
	Mappings struct {
		Direct struct {
			Fields map[string]string `yaml:"fields"`
		} `yaml:"direct"`
		Concatenate struct {
			Fields map[string]ConcatRule `yaml:"fields"`
		} `yaml:"concatenate"`
		Conditional struct {
			Fields map[string]ConditionalRule `yaml:"fields"`
		} `yaml:"conditional"`
		Default struct {
			Fields map[string]string `yaml:"fields"`
		} `yaml:"default"`
	} `yaml:"mappings"`

	RequiredFields []string `yaml:"required_fields"`
	OptionalFields []string `yaml:"optional_fields"`

	// DescriptionSources are scanned in order; the first non-empty value
	// becomes the description. SpecificationSources are appended behind the
	// internal marker for the body builder's section splitter.
	DescriptionSources   []string `yaml:"description_sources"`
	SpecificationSources []string `yaml:"specification_sources"`
}

// ConcatRule joins several source fields into one destination field.
type ConcatRule struct {
	Target    string   `yaml:"target"`
	Fields    []string `yaml:"fields"`
	Separator string   `yaml:"separator"`
}

// ConditionalRule sets a destination field from a comparison on a source
// field.
type ConditionalRule struct {
	Target    string    `yaml:"target"`
	Condition Condition `yaml:"condition"`
}

// Condition is `field OP value ? then : else` over the operators
// >, <, >=, <=, ==, !=, contains, empty.
type Condition struct {
	Field    string `yaml:"field"`
	Operator string `yaml:"operator"`
	Value    string `yaml:"value"`
	Then     string `yaml:"then"`
	Else     string `yaml:"else"`
}

// Load reads a mapping configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse mapping config: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// Default returns the built-in rule set for a WooCommerce-style export.
func Default() *Config {
	cfg := &Config{}
	cfg.Mappings.Direct.Fields = map[string]string{
		"Name":          models.ColTitle,
		"SKU":           models.ColSKU,
		"Sale price":    models.ColPrice,
		"Regular price": models.ColCompareAtPrice,
		"Images":        models.ColImageURL,
		"Categories":    models.ColCategory,
		"Tags":          models.ColTags,
		"Stock":         models.ColQuantity,
		"Weight (g)":    models.ColGrams,
	}
	cfg.Mappings.Conditional.Fields = map[string]ConditionalRule{
		"backorders": {
			Target: models.ColPolicy,
			Condition: Condition{
				Field:    "Backorders allowed?",
				Operator: "==",
				Value:    "1",
				Then:     "continue",
				Else:     "deny",
			},
		},
	}
	cfg.Mappings.Default.Fields = map[string]string{
		models.ColPublished:    "True",
		models.ColStatus:       "active",
		models.ColTracker:      "shopify",
		models.ColPolicy:       "deny",
		models.ColFulfillment:  "manual",
		models.ColRequiresShip: "True",
		models.ColChargeTax:    "True",
	}
	cfg.RequiredFields = []string{models.ColTitle, models.ColHandle, models.ColImageURL}
	cfg.OptionalFields = []string{
		models.ColDescription, models.ColCategory, models.ColTags,
		models.ColVendor, models.ColType, models.ColSEOTitle, models.ColSEODescription,
	}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	if len(c.DescriptionSources) == 0 {
		c.DescriptionSources = []string{"Description", "Short description", "Meta: description"}
	}
	if len(c.SpecificationSources) == 0 {
		c.SpecificationSources = []string{"Specifications", "Specification", "Features", "Attributes"}
	}
}
