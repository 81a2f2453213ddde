package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/tuplecheck/app"
	"github.com/ludo-technologies/tuplecheck/domain"
	"github.com/ludo-technologies/tuplecheck/service"
)

var (
	checkSortBy string

	// Output format flags (following the one-flag-per-format pattern)
	checkJSON bool
	checkCSV  bool
	checkYAML bool

	checkOutputPath string

	checkRecursive       bool
	checkIncludePatterns []string
	checkExcludePatterns []string
	checkConfigPath      string

	checkNoCallArgs       bool
	checkNoAssignments    bool
	checkNoComparisons    bool
	checkNoComprehensions bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check Python files for single-item tuples missing a trailing comma",
	Long: `Check Python files for parenthesized expressions that are probably
tuples missing their trailing comma (rule STC001).

Flagged contexts:
  x = ("item")        assignment value wrapped in parens without a comma
  x in ("A")          comparison operand wrapped in parens without a comma
  f((value))          call argument wrapped in a second, redundant paren pair
  [(y) for y in xs]   comprehension body wrapped in parens without a comma

Never flagged:
  x = ("item",)       real single-item tuple
  x = (a, b)          real tuple
  f((a, b))           tuple argument
  y = (a + b) * c     grouping parens in expressions

Examples:
  tuplecheck check src/                 # Check all Python files in src/
  tuplecheck check --json src/          # Output as JSON
  tuplecheck check --sort file src/     # Sort findings by file only
  tuplecheck check --no-call-args src/  # Skip the call-argument context`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheckCommand,
}

// NewCheckCmd creates and returns the check cobra command
func NewCheckCmd() *cobra.Command {
	return checkCmd
}

func init() {
	checkCmd.Flags().StringVar(&checkSortBy, "sort", "location", "Sort criteria (location|file)")

	// Output options
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output as JSON")
	checkCmd.Flags().BoolVar(&checkCSV, "csv", false, "Output as CSV")
	checkCmd.Flags().BoolVar(&checkYAML, "yaml", false, "Output as YAML")
	checkCmd.Flags().StringVarP(&checkOutputPath, "output", "o", "", "Write report to file instead of stdout")

	// File selection options
	checkCmd.Flags().BoolVar(&checkRecursive, "recursive", true, "Recursively analyze subdirectories")
	checkCmd.Flags().StringSliceVar(&checkIncludePatterns, "include", []string{"**/*.py"}, "Include file patterns")
	checkCmd.Flags().StringSliceVar(&checkExcludePatterns, "exclude", []string{}, "Exclude file patterns")

	// Context options
	checkCmd.Flags().BoolVar(&checkNoCallArgs, "no-call-args", false, "Don't check call arguments")
	checkCmd.Flags().BoolVar(&checkNoAssignments, "no-assignments", false, "Don't check assignment values")
	checkCmd.Flags().BoolVar(&checkNoComparisons, "no-comparisons", false, "Don't check comparison operands")
	checkCmd.Flags().BoolVar(&checkNoComprehensions, "no-comprehensions", false, "Don't check comprehension bodies")

	// Configuration
	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "c", "", "Configuration file path")
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	outputFormat := domain.OutputFormatText
	if checkJSON {
		outputFormat = domain.OutputFormatJSON
	} else if checkCSV {
		outputFormat = domain.OutputFormatCSV
	} else if checkYAML {
		outputFormat = domain.OutputFormatYAML
	}

	request := domain.TupleCheckRequest{
		Paths:           args,
		OutputFormat:    outputFormat,
		OutputWriter:    cmd.OutOrStdout(),
		OutputPath:      checkOutputPath,
		SortBy:          domain.TupleCheckSortCriteria(checkSortBy),
		ConfigPath:      checkConfigPath,
		Recursive:       checkRecursive,
		IncludePatterns: checkIncludePatterns,
		ExcludePatterns: checkExcludePatterns,
	}

	// Only explicitly disabled contexts override the config file
	if checkNoCallArgs {
		request.CheckCallArgs = domain.BoolPtr(false)
	}
	if checkNoAssignments {
		request.CheckAssignments = domain.BoolPtr(false)
	}
	if checkNoComparisons {
		request.CheckComparisons = domain.BoolPtr(false)
	}
	if checkNoComprehensions {
		request.CheckComprehensions = domain.BoolPtr(false)
	}

	if err := validateCheckSortCriteria(request.SortBy); err != nil {
		return fmt.Errorf("invalid sort criteria: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	var progress *service.ProgressReporterImpl
	if verbose {
		progress = service.NewProgressReporter()
	} else {
		progress = service.NewSilentProgressReporter()
	}

	checkService := service.NewTupleCheckService(progress)
	fileReader := service.NewFileReader()
	formatter := service.NewTupleCheckFormatter()
	configLoader := service.NewTupleCheckConfigurationLoader()

	useCase := app.NewTupleCheckUseCase(checkService, fileReader, formatter, configLoader, progress)

	ctx := cmd.Context()
	if err := useCase.Execute(ctx, request); err != nil {
		return fmt.Errorf("tuple check failed: %w", err)
	}

	return nil
}

func validateCheckSortCriteria(sortBy domain.TupleCheckSortCriteria) error {
	switch sortBy {
	case domain.TupleCheckSortByLocation, domain.TupleCheckSortByFile:
		return nil
	default:
		return fmt.Errorf("unsupported sort criteria '%s'. Valid options: location, file", sortBy)
	}
}
