// Package store loads and saves the keyword category table as YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is looked up when no explicit file is configured.
const DefaultCategoriesFile = "categories.yaml"

// CategoryStore manages the category table file.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store for the given file. An empty name means
// DefaultCategoriesFile in the standard locations.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logger,
	}
}

// FindConfigFile looks for filename in the working directory, ./config and
// ~/.config/billkaro, returning os.ErrNotExist when absent.
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
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "billkaro", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCategories reads the ordered category table. A missing file yields an
// empty table and no error, so callers fall back to the built-in table.
// Both a top-level "categories:" list and a bare list are accepted.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = DefaultCategoriesFile
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Categories file not found, using built-in table",
				logging.Field{Key: logging.FieldFile, Value: filename})
			return []models.CategoryConfig{}, nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	categories, err := decodeCategories(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}

	s.logger.Info("Loaded category table",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return categories, nil
}

func decodeCategories(data []byte) ([]models.CategoryConfig, error) {
	if strings.TrimSpace(string(data)) == "" {
		return []models.CategoryConfig{}, nil
	}

	var wrapped models.CategoriesConfig
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Categories) > 0 {
		return cleanCategories(wrapped.Categories)
	}

	var list []models.CategoryConfig
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("expected a list of {name, keywords}: %w", err)
	}
	return cleanCategories(list)
}

func cleanCategories(in []models.CategoryConfig) ([]models.CategoryConfig, error) {
	out := make([]models.CategoryConfig, 0, len(in))
	for i, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category at position %d has no name", i+1)
		}
		keywords := make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		out = append(out, models.CategoryConfig{Name: name, Keywords: keywords})
	}
	return out, nil
}

// SaveCategories writes the table to path under a top-level "categories" key.
func (s *CategoryStore) SaveCategories(path string, categories []models.CategoryConfig) error {
	data, err := yaml.Marshal(models.CategoriesConfig{Categories: categories})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}
	s.logger.Info("Saved category table",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return nil
}
