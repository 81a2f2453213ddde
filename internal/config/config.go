package config

// Config represents the tuplecheck configuration
type Config struct {
	// Input holds file selection configuration
	Input InputConfig `toml:"input" yaml:"input"`

	// Output holds output formatting configuration
	Output OutputConfig `toml:"output" yaml:"output"`

	// Check holds analysis configuration
	Check CheckConfig `toml:"check" yaml:"check"`
}

// InputConfig holds file selection settings
type InputConfig struct {
	// IncludePatterns are glob patterns for files to analyze
	IncludePatterns []string `toml:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns are glob patterns for files to skip
	ExcludePatterns []string `toml:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive enables recursive directory traversal. Pointer so an
	// explicit false in the config file is distinguishable from an
	// absent key.
	Recursive *bool `toml:"recursive" yaml:"recursive"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	// Format is one of text, json, yaml, csv
	Format string `toml:"format" yaml:"format"`

	// SortBy is one of location, file
	SortBy string `toml:"sort_by" yaml:"sort_by"`
}

// CheckConfig holds analysis settings. Pointer booleans distinguish an
// explicit false in the config file from an absent key.
type CheckConfig struct {
	// CallArgs checks double-parenthesized call arguments: f((x))
	CallArgs *bool `toml:"call_args" yaml:"call_args"`

	// Assignments checks assignment values: x = (y)
	Assignments *bool `toml:"assignments" yaml:"assignments"`

	// Comparisons checks comparison operands: x in ("A")
	Comparisons *bool `toml:"comparisons" yaml:"comparisons"`

	// Comprehensions checks comprehension bodies: [(y) for y in xs]
	Comprehensions *bool `toml:"comprehensions" yaml:"comprehensions"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			IncludePatterns: []string{"**/*.py"},
			ExcludePatterns: []string{},
			Recursive:       boolPtr(true),
		},
		Output: OutputConfig{
			Format: "text",
			SortBy: "location",
		},
		Check: CheckConfig{},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
