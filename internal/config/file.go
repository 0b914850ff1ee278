package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFileNames are searched, in order, under $XDG_CONFIG_HOME/dir-lister
var DefaultFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// File mirrors the config file. A nil field was not set in the file.
type File struct {
	GitIgnore     *bool   `yaml:"gitignore" toml:"gitignore"`
	All           *bool   `yaml:"all" toml:"all"`
	GitDiscovery  *bool   `yaml:"git-discovery" toml:"git-discovery"`
	Matcher       *string `yaml:"matcher" toml:"matcher"`
	Tree          *bool   `yaml:"tree" toml:"tree"`
	Depth         *int    `yaml:"depth" toml:"depth"`
	TreePath      *string `yaml:"tree-path" toml:"tree-path"`
	TreePathScope *string `yaml:"tree-path-scope" toml:"tree-path-scope"`
	JSON          *bool   `yaml:"json" toml:"json"`
	Color         *string `yaml:"color" toml:"color"`
	ShowSkipped   *bool   `yaml:"show-skipped" toml:"show-skipped"`
	LogLevel      *string `yaml:"log-level" toml:"log-level"`
	Concurrent    *bool   `yaml:"concurrent" toml:"concurrent"`
	Workers       *int    `yaml:"workers" toml:"workers"`
	Timeout       *string `yaml:"timeout" toml:"timeout"`
}

// LoadFile reads explicit if given, otherwise the first default config file
// found in the XDG config directories. Finding no default file is not an
// error. It returns the parsed file and the path it came from.
func LoadFile(explicit string) (*File, string, error) {
	if explicit != "" {
		file, err := ReadFile(explicit)
		return file, explicit, err
	}

	for _, name := range DefaultFileNames {
		path, err := xdg.SearchConfigFile(filepath.Join(AppName, name))
		if err != nil {
			continue
		}
		file, err := ReadFile(path)
		return file, path, err
	}
	return &File{}, "", nil
}

// ReadFile parses a YAML or TOML config file, chosen by extension
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: file '%s' not found", path)
		}
		return nil, fmt.Errorf("config: reading '%s': %w", path, err)
	}
	return ParseFile(data, filepath.Ext(path))
}

// ParseFile decodes config data; ext selects the format (".toml" or YAML otherwise)
func ParseFile(data []byte, ext string) (*File, error) {
	file := &File{}
	if strings.EqualFold(ext, ".toml") {
		if err := toml.Unmarshal(data, file); err != nil {
			return nil, fmt.Errorf("config: parsing TOML: %w", err)
		}
		return file, nil
	}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("config: parsing YAML: %w", err)
	}
	return file, nil
}
