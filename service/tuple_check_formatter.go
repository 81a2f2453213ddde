package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/tuplecheck/domain"
)

// TupleCheckFormatterImpl implements the domain.TupleCheckFormatter interface
type TupleCheckFormatterImpl struct{}

// NewTupleCheckFormatter creates a new formatter service
func NewTupleCheckFormatter() *TupleCheckFormatterImpl {
	return &TupleCheckFormatterImpl{}
}

// Format formats the analysis response according to the specified format
func (f *TupleCheckFormatterImpl) Format(response *domain.TupleCheckResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return EncodeJSON(f.createJSONResponse(response))
	case domain.OutputFormatYAML:
		return EncodeYAML(f.createJSONResponse(response))
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *TupleCheckFormatterImpl) Write(response *domain.TupleCheckResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}

	if _, err := writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// formatText renders findings the way flake8 prints diagnostics:
// file:line:col: CODE message. Columns are printed 1-based.
func (f *TupleCheckFormatterImpl) formatText(response *domain.TupleCheckResponse) (string, error) {
	var builder strings.Builder

	for _, file := range response.Files {
		for _, finding := range file.Findings {
			builder.WriteString(fmt.Sprintf("%s:%d:%d: %s %s\n",
				finding.Location.FilePath,
				finding.Location.StartLine,
				finding.Location.StartColumn+1,
				finding.Rule,
				finding.Message))
			if finding.SourceLine != "" {
				builder.WriteString(fmt.Sprintf("    %s\n", finding.SourceLine))
			}
		}
	}

	builder.WriteString(fmt.Sprintf("\nChecked %d files (%d candidate nodes): %d findings in %d files\n",
		response.Summary.TotalFiles,
		response.Summary.TotalNodesChecked,
		response.Summary.TotalFindings,
		response.Summary.FilesWithFindings))

	if len(response.Warnings) > 0 {
		builder.WriteString("\nWarnings:\n")
		for _, w := range response.Warnings {
			builder.WriteString(fmt.Sprintf("  %s\n", w))
		}
	}

	if len(response.Errors) > 0 {
		builder.WriteString("\nErrors:\n")
		for _, e := range response.Errors {
			builder.WriteString(fmt.Sprintf("  %s\n", e))
		}
	}

	return builder.String(), nil
}

// formatCSV renders one row per finding
func (f *TupleCheckFormatterImpl) formatCSV(response *domain.TupleCheckResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"File", "Line", "Column", "Rule", "Message"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, file := range response.Files {
		for _, finding := range file.Findings {
			row := []string{
				finding.Location.FilePath,
				fmt.Sprintf("%d", finding.Location.StartLine),
				fmt.Sprintf("%d", finding.Location.StartColumn),
				finding.Rule,
				finding.Message,
			}
			if err := writer.Write(row); err != nil {
				return "", domain.NewOutputError("failed to write CSV row", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("CSV writer error", err)
	}

	return builder.String(), nil
}

// createJSONResponse creates a JSON/YAML-friendly response structure
func (f *TupleCheckFormatterImpl) createJSONResponse(response *domain.TupleCheckResponse) map[string]interface{} {
	files := make([]map[string]interface{}, len(response.Files))
	for i, file := range response.Files {
		findings := make([]map[string]interface{}, len(file.Findings))
		for j, finding := range file.Findings {
			findings[j] = map[string]interface{}{
				"line":        finding.Location.StartLine,
				"column":      finding.Location.StartColumn,
				"end_line":    finding.Location.EndLine,
				"end_column":  finding.Location.EndColumn,
				"rule":        finding.Rule,
				"message":     finding.Message,
				"source_line": finding.SourceLine,
			}
		}
		files[i] = map[string]interface{}{
			"file_path":      file.FilePath,
			"findings":       findings,
			"nodes_checked":  file.NodesChecked,
			"total_findings": file.TotalFindings,
		}
	}

	summary := map[string]interface{}{
		"total_files":         response.Summary.TotalFiles,
		"files_with_findings": response.Summary.FilesWithFindings,
		"total_findings":      response.Summary.TotalFindings,
		"total_nodes_checked": response.Summary.TotalNodesChecked,
	}

	metadata := map[string]interface{}{
		"generated_at": response.GeneratedAt,
		"version":      response.Version,
	}
	if response.Config != nil {
		metadata["configuration"] = response.Config
	}

	result := map[string]interface{}{
		"summary":  summary,
		"results":  files,
		"metadata": metadata,
	}

	if len(response.Warnings) > 0 {
		result["warnings"] = response.Warnings
	}
	if len(response.Errors) > 0 {
		result["errors"] = response.Errors
	}

	return result
}
