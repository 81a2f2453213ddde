package domain

import (
	"context"
	"io"
)

// Rule code and message for single-item tuple findings. The message mirrors
// the phrasing users see from comparable flake8 plugins.
const (
	RuleSingleTuple        = "STC001"
	RuleSingleTupleMessage = "single-item tuple missing trailing comma; did you mean `(x,)`?"
)

// TupleCheckSortCriteria represents the criteria for sorting findings
type TupleCheckSortCriteria string

const (
	TupleCheckSortByLocation TupleCheckSortCriteria = "location"
	TupleCheckSortByFile     TupleCheckSortCriteria = "file"
)

// TupleCheckRequest represents a request for single-tuple analysis
type TupleCheckRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // Path to save output file (empty = write to OutputWriter)

	// Sorting
	SortBy TupleCheckSortCriteria

	// File selection
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Configuration
	ConfigPath string

	// Context toggles: which syntactic positions are checked.
	// nil = use default (true), non-nil = explicitly set
	CheckCallArgs       *bool
	CheckAssignments    *bool
	CheckComparisons    *bool
	CheckComprehensions *bool
}

// TupleCheckLocation represents the span of a flagged node
type TupleCheckLocation struct {
	FilePath    string `json:"file_path"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
}

// TupleCheckFinding represents a single redundant-parenthesis finding
type TupleCheckFinding struct {
	Location TupleCheckLocation `json:"location"`

	Rule    string `json:"rule"`
	Message string `json:"message"`

	// SourceLine is the full text of the line the finding starts on
	SourceLine string `json:"source_line,omitempty"`
}

// FileTupleCheck represents the analysis result for a single file
type FileTupleCheck struct {
	FilePath string `json:"file_path"`

	Findings []TupleCheckFinding `json:"findings"`

	// NodesChecked is the number of candidate nodes evaluated in the file
	NodesChecked  int `json:"nodes_checked"`
	TotalFindings int `json:"total_findings"`
}

// TupleCheckSummary represents aggregate statistics for a whole run
type TupleCheckSummary struct {
	TotalFiles        int `json:"total_files"`
	FilesWithFindings int `json:"files_with_findings"`
	TotalFindings     int `json:"total_findings"`
	TotalNodesChecked int `json:"total_nodes_checked"`
}

// TupleCheckResponse represents the complete analysis result
type TupleCheckResponse struct {
	Files   []FileTupleCheck  `json:"files"`
	Summary TupleCheckSummary `json:"summary"`

	// Warnings and issues
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`

	// Metadata
	GeneratedAt string      `json:"generated_at"`
	Version     string      `json:"version"`
	Config      interface{} `json:"config"` // Configuration used for analysis
}

// TupleCheckService defines the core business logic for single-tuple analysis
type TupleCheckService interface {
	// Analyze performs tuple analysis on the given request
	Analyze(ctx context.Context, req TupleCheckRequest) (*TupleCheckResponse, error)

	// AnalyzeFile analyzes a single Python file
	AnalyzeFile(ctx context.Context, filePath string, req TupleCheckRequest) (*FileTupleCheck, error)
}

// TupleCheckConfigurationLoader defines the interface for loading configuration
type TupleCheckConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*TupleCheckRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *TupleCheckRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *TupleCheckRequest, override *TupleCheckRequest) *TupleCheckRequest
}

// TupleCheckFormatter defines the interface for formatting analysis results
type TupleCheckFormatter interface {
	// Format formats the response according to the specified format
	Format(response *TupleCheckResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *TupleCheckResponse, format OutputFormat, writer io.Writer) error
}

// Helper functions for pointer boolean handling

// BoolPtr creates a pointer to a boolean value
func BoolPtr(b bool) *bool {
	return &b
}

// BoolValue safely dereferences a boolean pointer, returning defaultVal if nil
func BoolValue(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// DefaultTupleCheckRequest returns the default configuration values
func DefaultTupleCheckRequest() *TupleCheckRequest {
	return &TupleCheckRequest{
		OutputFormat:    OutputFormatText,
		SortBy:          TupleCheckSortByLocation,
		Recursive:       true,
		IncludePatterns: []string{"**/*.py"},
		ExcludePatterns: []string{},

		CheckCallArgs:       BoolPtr(true),
		CheckAssignments:    BoolPtr(true),
		CheckComparisons:    BoolPtr(true),
		CheckComprehensions: BoolPtr(true),
	}
}

// Validate validates the request
func (req *TupleCheckRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewInvalidInputError("at least one path must be specified", nil)
	}

	validFormats := map[OutputFormat]bool{
		OutputFormatText: true,
		OutputFormatJSON: true,
		OutputFormatYAML: true,
		OutputFormatCSV:  true,
	}
	if !validFormats[req.OutputFormat] {
		return NewInvalidInputError("invalid output format", nil)
	}

	validSortBy := map[TupleCheckSortCriteria]bool{
		TupleCheckSortByLocation: true,
		TupleCheckSortByFile:     true,
	}
	if !validSortBy[req.SortBy] {
		return NewInvalidInputError("invalid sort criteria", nil)
	}

	return nil
}

// HasFindings returns true if the file has any findings
func (f *FileTupleCheck) HasFindings() bool {
	return len(f.Findings) > 0
}
