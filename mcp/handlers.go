package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/tuplecheck/app"
	"github.com/ludo-technologies/tuplecheck/domain"
	"github.com/ludo-technologies/tuplecheck/service"
)

// HandleCheckTuples handles the check_tuples tool
func HandleCheckTuples(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := *domain.DefaultTupleCheckRequest()
	req.Paths = []string{path}
	req.OutputFormat = domain.OutputFormatJSON

	if recursive, ok := args["recursive"].(bool); ok {
		req.Recursive = recursive
	}
	if v, ok := args["check_call_args"].(bool); ok {
		req.CheckCallArgs = domain.BoolPtr(v)
	}
	if v, ok := args["check_assignments"].(bool); ok {
		req.CheckAssignments = domain.BoolPtr(v)
	}
	if v, ok := args["check_comparisons"].(bool); ok {
		req.CheckComparisons = domain.BoolPtr(v)
	}
	if v, ok := args["check_comprehensions"].(bool); ok {
		req.CheckComprehensions = domain.BoolPtr(v)
	}

	progress := service.NewSilentProgressReporter()
	useCase := app.NewTupleCheckUseCase(
		service.NewTupleCheckService(progress),
		service.NewFileReader(),
		service.NewTupleCheckFormatter(),
		service.NewTupleCheckConfigurationLoader(),
		progress,
	)

	result, err := useCase.AnalyzeAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("tuple check failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(formatCheckSummary(result))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// formatCheckSummary reduces a response to what an MCP client needs: the
// summary plus a flat list of findings.
func formatCheckSummary(result *domain.TupleCheckResponse) map[string]interface{} {
	findings := []map[string]interface{}{}
	for _, file := range result.Files {
		for _, finding := range file.Findings {
			findings = append(findings, map[string]interface{}{
				"file":    finding.Location.FilePath,
				"line":    finding.Location.StartLine,
				"column":  finding.Location.StartColumn,
				"rule":    finding.Rule,
				"message": finding.Message,
			})
		}
	}

	summary := map[string]interface{}{
		"total_files":         result.Summary.TotalFiles,
		"files_with_findings": result.Summary.FilesWithFindings,
		"total_findings":      result.Summary.TotalFindings,
		"findings":            findings,
	}

	if len(result.Errors) > 0 {
		summary["errors"] = result.Errors
	}

	return summary
}
