package domain

// OutputFormat represents the format for analysis output
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// FileReader abstracts file collection and reading for the use case layer
type FileReader interface {
	// CollectPythonFiles recursively finds all Python files in the given paths
	CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidPythonFile checks if a file is a valid Python file
	IsValidPythonFile(path string) bool

	// FileExists checks if a file exists
	FileExists(path string) (bool, error)
}

// ProgressReporter reports analysis progress to the user
type ProgressReporter interface {
	// StartProgress starts progress reporting for the given number of files
	StartProgress(totalFiles int)

	// UpdateProgress updates the progress with the current file being processed
	UpdateProgress(currentFile string, processed, total int)

	// FinishProgress completes progress reporting
	FinishProgress()
}
