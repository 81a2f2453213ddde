package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// TomlConfigLoader loads tuplecheck configuration from TOML files. Dedicated
// config files take priority over pyproject.toml:
//
//  1. .tuplecheck.toml
//  2. tuplecheck.toml
//  3. pyproject.toml [tool.tuplecheck]
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML config loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// pyprojectToml represents the parts of pyproject.toml we read
type pyprojectToml struct {
	Tool toolSection `toml:"tool"`
}

type toolSection struct {
	Tuplecheck Config `toml:"tuplecheck"`
}

// LoadConfig loads configuration from the given path. A directory triggers
// config file discovery starting there; a file path is loaded directly.
func (l *TomlConfigLoader) LoadConfig(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config path %s: %w", path, err)
	}

	if info.IsDir() {
		return l.loadFromDirectory(path)
	}
	return l.loadFile(path)
}

// LoadDefaultConfig discovers and loads configuration starting from the
// current directory, falling back to defaults when no config file exists.
func (l *TomlConfigLoader) LoadDefaultConfig() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultConfig()
	}

	cfg, err := l.loadFromDirectory(cwd)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// GetSupportedConfigFiles returns the dedicated config file names, in
// priority order.
func (l *TomlConfigLoader) GetSupportedConfigFiles() []string {
	return []string{".tuplecheck.toml", "tuplecheck.toml"}
}

func (l *TomlConfigLoader) loadFromDirectory(dir string) (*Config, error) {
	for _, name := range l.GetSupportedConfigFiles() {
		if path, ok := findUp(dir, name); ok {
			return l.loadFile(path)
		}
	}
	if path, ok := findUp(dir, "pyproject.toml"); ok {
		return l.loadPyprojectFile(path)
	}
	return DefaultConfig(), nil
}

func (l *TomlConfigLoader) loadFile(path string) (*Config, error) {
	if filepath.Base(path) == "pyproject.toml" {
		return l.loadPyprojectFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fileCfg Config
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

func (l *TomlConfigLoader) loadPyprojectFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pyproject pyprojectToml
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	mergeConfig(cfg, &pyproject.Tool.Tuplecheck)
	return cfg, nil
}

// findUp walks up the directory tree from startDir looking for name.
func findUp(startDir, name string) (string, bool) {
	dir := startDir
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// mergeConfig overlays non-zero values from src onto dst. Boolean options
// use pointers, so an explicit false in the file still overrides.
func mergeConfig(dst, src *Config) {
	if len(src.Input.IncludePatterns) > 0 {
		dst.Input.IncludePatterns = src.Input.IncludePatterns
	}
	if len(src.Input.ExcludePatterns) > 0 {
		dst.Input.ExcludePatterns = src.Input.ExcludePatterns
	}
	if src.Input.Recursive != nil {
		dst.Input.Recursive = src.Input.Recursive
	}

	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.SortBy != "" {
		dst.Output.SortBy = src.Output.SortBy
	}

	if src.Check.CallArgs != nil {
		dst.Check.CallArgs = src.Check.CallArgs
	}
	if src.Check.Assignments != nil {
		dst.Check.Assignments = src.Check.Assignments
	}
	if src.Check.Comparisons != nil {
		dst.Check.Comparisons = src.Check.Comparisons
	}
	if src.Check.Comprehensions != nil {
		dst.Check.Comprehensions = src.Check.Comprehensions
	}
}
