package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTheme reads a single theme definition from disk.
func LoadTheme(path string) (*ThemeDefinition, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("theme path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}

	theme, err := parseTheme(data)
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	theme.Source = path
	return theme, nil
}

// LoadThemesFromDir loads all theme definitions from a directory. A missing
// directory is not an error; it simply contributes no themes.
func LoadThemesFromDir(dir string) ([]*ThemeDefinition, error) {
	if strings.TrimSpace(dir) == "" {
		return []*ThemeDefinition{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*ThemeDefinition{}, nil
		}
		return nil, fmt.Errorf("read themes dir %s: %w", dir, err)
	}

	themes := make([]*ThemeDefinition, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		theme, err := LoadTheme(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}

	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})

	return themes, nil
}

// Load builds a catalog from the builtin themes overlaid with any user themes
// found in dir.
func Load(dir string) (*Catalog, error) {
	builtin, err := LoadBuiltinThemes()
	if err != nil {
		return nil, err
	}
	user, err := LoadThemesFromDir(dir)
	if err != nil {
		return nil, err
	}
	return New(append(builtin, user...)...), nil
}

func parseTheme(data []byte) (*ThemeDefinition, error) {
	var theme ThemeDefinition
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, err
	}

	theme.Name = strings.TrimSpace(theme.Name)
	if err := theme.Validate(); err != nil {
		return nil, err
	}

	return &theme, nil
}
