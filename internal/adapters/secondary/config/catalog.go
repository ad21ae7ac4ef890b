package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// LoadModelCatalog reads the model catalog from a YAML file. An empty
// path returns the built-in defaults.
func LoadModelCatalog(path string) (entities.ModelCatalog, error) {
	if path == "" {
		return entities.DefaultModelCatalog(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from validated config
	if err != nil {
		return entities.ModelCatalog{}, fmt.Errorf("reading model catalog %s: %w", path, err)
	}

	var catalog entities.ModelCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return entities.ModelCatalog{}, fmt.Errorf("parsing model catalog %s: %w", path, err)
	}

	if err := catalog.Validate(); err != nil {
		return entities.ModelCatalog{}, fmt.Errorf("invalid model catalog %s: %w", path, err)
	}

	return catalog, nil
}
