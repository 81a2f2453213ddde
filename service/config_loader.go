package service

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/tuplecheck/domain"
	"github.com/ludo-technologies/tuplecheck/internal/config"
)

// TupleCheckConfigurationLoaderImpl implements the domain.TupleCheckConfigurationLoader interface
type TupleCheckConfigurationLoaderImpl struct{}

// NewTupleCheckConfigurationLoader creates a new configuration loader service
func NewTupleCheckConfigurationLoader() *TupleCheckConfigurationLoaderImpl {
	return &TupleCheckConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (cl *TupleCheckConfigurationLoaderImpl) LoadConfig(path string) (*domain.TupleCheckRequest, error) {
	tomlLoader := config.NewTomlConfigLoader()
	cfg, err := tomlLoader.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return cl.configToRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, first checking for a
// config file discovered from the current directory
func (cl *TupleCheckConfigurationLoaderImpl) LoadDefaultConfig() *domain.TupleCheckRequest {
	tomlLoader := config.NewTomlConfigLoader()
	return cl.configToRequest(tomlLoader.LoadDefaultConfig())
}

// MergeConfig merges CLI flags with configuration file
func (cl *TupleCheckConfigurationLoaderImpl) MergeConfig(base *domain.TupleCheckRequest, override *domain.TupleCheckRequest) *domain.TupleCheckRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.SortBy != "" {
		merged.SortBy = override.SortBy
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	merged.Recursive = override.Recursive

	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	// Pointer toggles: only explicitly set flags override the file config
	if override.CheckCallArgs != nil {
		merged.CheckCallArgs = override.CheckCallArgs
	}
	if override.CheckAssignments != nil {
		merged.CheckAssignments = override.CheckAssignments
	}
	if override.CheckComparisons != nil {
		merged.CheckComparisons = override.CheckComparisons
	}
	if override.CheckComprehensions != nil {
		merged.CheckComprehensions = override.CheckComprehensions
	}

	return &merged
}

// FindDefaultConfigFile looks for config files in the current directory
func (cl *TupleCheckConfigurationLoaderImpl) FindDefaultConfigFile() string {
	tomlLoader := config.NewTomlConfigLoader()

	for _, filename := range tomlLoader.GetSupportedConfigFiles() {
		if _, err := os.Stat(filename); err == nil {
			return filename
		}
	}

	return ""
}

// ValidateConfig validates a configuration
func (cl *TupleCheckConfigurationLoaderImpl) ValidateConfig(req *domain.TupleCheckRequest) error {
	if req == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	return req.Validate()
}

// SaveConfig saves configuration to a file
func (cl *TupleCheckConfigurationLoaderImpl) SaveConfig(req *domain.TupleCheckRequest, path string) error {
	if req == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	cfg := cl.requestToConfig(req)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.Set("input", cfg.Input)
	v.Set("output", cfg.Output)
	v.Set("check", map[string]bool{
		"call_args":      domain.BoolValue(req.CheckCallArgs, true),
		"assignments":    domain.BoolValue(req.CheckAssignments, true),
		"comparisons":    domain.BoolValue(req.CheckComparisons, true),
		"comprehensions": domain.BoolValue(req.CheckComprehensions, true),
	})

	return v.WriteConfig()
}

// configToRequest converts a config.Config to domain.TupleCheckRequest
func (cl *TupleCheckConfigurationLoaderImpl) configToRequest(cfg *config.Config) *domain.TupleCheckRequest {
	if cfg == nil {
		return domain.DefaultTupleCheckRequest()
	}

	var outputFormat domain.OutputFormat
	switch cfg.Output.Format {
	case "json":
		outputFormat = domain.OutputFormatJSON
	case "yaml", "yml":
		outputFormat = domain.OutputFormatYAML
	case "csv":
		outputFormat = domain.OutputFormatCSV
	default:
		outputFormat = domain.OutputFormatText
	}

	var sortBy domain.TupleCheckSortCriteria
	switch cfg.Output.SortBy {
	case "file":
		sortBy = domain.TupleCheckSortByFile
	default:
		sortBy = domain.TupleCheckSortByLocation
	}

	req := domain.DefaultTupleCheckRequest()
	req.OutputFormat = outputFormat
	req.SortBy = sortBy
	req.Recursive = domain.BoolValue(cfg.Input.Recursive, true)
	req.IncludePatterns = cfg.Input.IncludePatterns
	req.ExcludePatterns = cfg.Input.ExcludePatterns
	if cfg.Check.CallArgs != nil {
		req.CheckCallArgs = cfg.Check.CallArgs
	}
	if cfg.Check.Assignments != nil {
		req.CheckAssignments = cfg.Check.Assignments
	}
	if cfg.Check.Comparisons != nil {
		req.CheckComparisons = cfg.Check.Comparisons
	}
	if cfg.Check.Comprehensions != nil {
		req.CheckComprehensions = cfg.Check.Comprehensions
	}

	return req
}

// requestToConfig converts a domain.TupleCheckRequest back to config.Config
func (cl *TupleCheckConfigurationLoaderImpl) requestToConfig(req *domain.TupleCheckRequest) *config.Config {
	cfg := config.DefaultConfig()

	switch req.OutputFormat {
	case domain.OutputFormatJSON:
		cfg.Output.Format = "json"
	case domain.OutputFormatYAML:
		cfg.Output.Format = "yaml"
	case domain.OutputFormatCSV:
		cfg.Output.Format = "csv"
	default:
		cfg.Output.Format = "text"
	}

	switch req.SortBy {
	case domain.TupleCheckSortByFile:
		cfg.Output.SortBy = "file"
	default:
		cfg.Output.SortBy = "location"
	}

	cfg.Input.Recursive = domain.BoolPtr(req.Recursive)
	cfg.Input.IncludePatterns = req.IncludePatterns
	cfg.Input.ExcludePatterns = req.ExcludePatterns
	cfg.Check.CallArgs = req.CheckCallArgs
	cfg.Check.Assignments = req.CheckAssignments
	cfg.Check.Comparisons = req.CheckComparisons
	cfg.Check.Comprehensions = req.CheckComprehensions

	return cfg
}
