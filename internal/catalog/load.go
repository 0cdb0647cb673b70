package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"calcdir/internal/models"

	"gopkg.in/yaml.v3"
)

// defaultYAML is the built-in calculator list.
//
//go:embed calculators.yaml
var defaultYAML []byte

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := LoadFromBytes(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// DefaultYAML returns a copy of the built-in catalog file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// LoadFromBytes parses a YAML catalog and validates it.
func LoadFromBytes(data []byte) (*Catalog, error) {
	var file models.CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	entries := make([]models.Calculator, 0, len(file.Calculators))
	for _, def := range file.Calculators {
		entries = append(entries, models.NewCalculator(def))
	}
	return New(entries)
}

// LoadFromFile reads a YAML catalog from path.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return LoadFromBytes(data)
}

// Load returns the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return LoadFromFile(expandHome(path))
}

// WriteFile stores the catalog as YAML, creating parent directories.
func WriteFile(path string, c *Catalog) error {
	file := models.CatalogFile{Calculators: make([]models.CalculatorDefinition, 0, c.Len())}
	for _, e := range c.entries {
		file.Calculators = append(file.Calculators, e.Definition())
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return err
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
