package entities

import (
	"errors"
	"fmt"
)

// ModelOption maps a human-readable model name to its backend identifier.
type ModelOption struct {
	// Label is the display name shown in the UI (e.g. "Mistral 7B")
	Label string `yaml:"label" json:"label"`

	// ID is the backend model identifier (e.g. "mistralai/mistral-7b-instruct")
	ID string `yaml:"id" json:"id"`
}

// Validate ensures the option is usable
func (m ModelOption) Validate() error {
	if m.Label == "" {
		return errors.New("model label cannot be empty")
	}
	if m.ID == "" {
		return fmt.Errorf("model %q has no backend identifier", m.Label)
	}
	return nil
}

// ModelCatalog is the ordered set of selectable generation models.
type ModelCatalog struct {
	Models []ModelOption `yaml:"models" json:"models"`
}

// DefaultModelCatalog returns the built-in model set used when no
// catalog file is configured.
func DefaultModelCatalog() ModelCatalog {
	return ModelCatalog{
		Models: []ModelOption{
			{Label: "Mistral 7B", ID: "mistralai/mistral-7b-instruct"},
			{Label: "Mixtral 8x7B", ID: "mistralai/mixtral-8x7b-instruct"},
			{Label: "GPT-3.5 Turbo", ID: "openai/gpt-3.5-turbo"},
			{Label: "Claude 2.1", ID: "anthropic/claude-2.1"},
		},
	}
}

// Validate ensures the catalog is non-empty and every entry is valid
func (c ModelCatalog) Validate() error {
	if len(c.Models) == 0 {
		return errors.New("model catalog cannot be empty")
	}

	seen := make(map[string]bool, len(c.Models))
	for _, m := range c.Models {
		if err := m.Validate(); err != nil {
			return err
		}
		if seen[m.Label] {
			return fmt.Errorf("duplicate model label: %s", m.Label)
		}
		seen[m.Label] = true
	}

	return nil
}

// Resolve maps a display label or backend identifier to the backend
// identifier. Unknown names return an error.
func (c ModelCatalog) Resolve(name string) (string, error) {
	for _, m := range c.Models {
		if m.Label == name || m.ID == name {
			return m.ID, nil
		}
	}
	return "", fmt.Errorf("unknown model: %s", name)
}

// Default returns the first catalog entry
func (c ModelCatalog) Default() ModelOption {
	if len(c.Models) == 0 {
		return ModelOption{}
	}
	return c.Models[0]
}
