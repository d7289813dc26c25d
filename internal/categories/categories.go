// Package categories manages display metadata for transaction categories.
// Metadata is loaded from an optional YAML file so users can restyle the
// report output without rebuilding; built-in defaults cover every category.
package categories

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/WeiChun0723/Moni/internal/config"
	"github.com/WeiChun0723/Moni/internal/models"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Style holds the display attributes of one category.
type Style struct {
	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
}

// stylesDocument is the on-disk shape of the styles file.
type stylesDocument struct {
	Categories map[string]Style `yaml:"categories"`
}

// defaultStyles covers every built-in category.
var defaultStyles = map[models.Category]Style{
	models.CategoryFood:          {Color: "#f87171", Icon: "🍔"},
	models.CategoryTransport:     {Color: "#fbbf24", Icon: "🚌"},
	models.CategoryHousing:       {Color: "#34d399", Icon: "🏠"},
	models.CategoryEntertainment: {Color: "#818cf8", Icon: "🎬"},
	models.CategoryUtilities:     {Color: "#60a5fa", Icon: "💡"},
	models.CategoryShopping:      {Color: "#f472b6", Icon: "🛍"},
	models.CategoryHealth:        {Color: "#fb7185", Icon: "🩺"},
	models.CategoryIncome:        {Color: "#10b981", Icon: "💰"},
	models.CategoryOther:         {Color: "#94a3b8", Icon: "📦"},
}

// StyleStore resolves category styles, merging user overrides over defaults.
type StyleStore struct {
	StylesFile string

	styles map[models.Category]Style
}

// NewStyleStore creates a style store. A non-empty stylesFile names a YAML
// file with per-category overrides.
func NewStyleStore(stylesFile string) *StyleStore {
	return &StyleStore{StylesFile: stylesFile}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *StyleStore) FindConfigFile(filename string) (string, error) {
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
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".moni", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads the styles file and merges it over the defaults. A missing file
// is not an error; the defaults stand on their own.
func (s *StyleStore) Load() error {
	s.styles = make(map[models.Category]Style, len(defaultStyles))
	for category, style := range defaultStyles {
		s.styles[category] = style
	}

	filename := s.StylesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Category styles file not found: %s, using defaults", filename)
			return nil
		}
		return fmt.Errorf("error resolving category styles file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading category styles file: %w", err)
	}

	var doc stylesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("error parsing category styles file: %w", err)
	}

	applied := 0
	for name, style := range doc.Categories {
		category := models.NormalizeCategory(name)
		if category == models.CategoryOther && name != string(models.CategoryOther) {
			log.Warnf("Ignoring styles for unknown category %q", name)
			continue
		}
		merged := s.styles[category]
		if style.Color != "" {
			merged.Color = style.Color
		}
		if style.Icon != "" {
			merged.Icon = style.Icon
		}
		s.styles[category] = merged
		applied++
	}

	log.Debugf("Loaded %d category style overrides from %s", applied, filePath)
	return nil
}

// Style returns the display attributes of a category. Unknown categories get
// the Other style.
func (s *StyleStore) Style(category models.Category) Style {
	if s.styles == nil {
		if style, ok := defaultStyles[category]; ok {
			return style
		}
		return defaultStyles[models.CategoryOther]
	}
	if style, ok := s.styles[category]; ok {
		return style
	}
	return s.styles[models.CategoryOther]
}

// Save writes the current styles back to the styles file.
func (s *StyleStore) Save() error {
	filename := s.StylesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving category styles file: %w", err)
	}
	if err == os.ErrNotExist {
		if filepath.IsAbs(filename) {
			filePath = filename
		} else {
			homeDir, homeErr := os.UserHomeDir()
			if homeErr != nil {
				filePath = filename
			} else {
				filePath = filepath.Join(homeDir, ".moni", filename)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	doc := stylesDocument{Categories: make(map[string]Style, len(s.styles))}
	for category, style := range s.styles {
		doc.Categories[string(category)] = style
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling category styles: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing category styles: %w", err)
	}

	log.Debugf("Saved %d category styles to %s", len(doc.Categories), filePath)
	return nil
}
