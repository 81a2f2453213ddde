package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ludo-technologies/tuplecheck/domain"
	"github.com/ludo-technologies/tuplecheck/internal/analyzer"
	"github.com/ludo-technologies/tuplecheck/internal/parser"
	"github.com/ludo-technologies/tuplecheck/internal/version"
)

// TupleCheckServiceImpl implements the domain.TupleCheckService interface
type TupleCheckServiceImpl struct {
	parser     *parser.Parser
	fileReader *FileReaderImpl
	progress   domain.ProgressReporter
}

// NewTupleCheckService creates a new tuple check service implementation
func NewTupleCheckService(progress domain.ProgressReporter) *TupleCheckServiceImpl {
	return &TupleCheckServiceImpl{
		parser:     parser.New(),
		fileReader: NewFileReader(),
		progress:   progress,
	}
}

// Analyze performs single-tuple analysis on all files in the request
func (s *TupleCheckServiceImpl) Analyze(ctx context.Context, req domain.TupleCheckRequest) (*domain.TupleCheckResponse, error) {
	var allFiles []domain.FileTupleCheck
	var warnings []string
	var errors []string
	filesProcessed := 0
	totalNodes := 0

	for i, filePath := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.progress != nil {
			s.progress.UpdateProgress(filePath, i, len(req.Paths))
		}

		fileResult, err := s.analyzeFile(ctx, filePath, req)
		if err != nil {
			// A bad file must not abort the batch
			errors = append(errors, fmt.Sprintf("[%s] %v", filePath, err))
			continue
		}

		filesProcessed++
		totalNodes += fileResult.NodesChecked
		if fileResult.HasFindings() {
			allFiles = append(allFiles, *fileResult)
		}
	}

	sortedFiles := s.sortFiles(allFiles, req.SortBy)
	summary := s.buildSummary(sortedFiles, filesProcessed, totalNodes)

	return &domain.TupleCheckResponse{
		Files:       sortedFiles,
		Summary:     summary,
		Warnings:    warnings,
		Errors:      errors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		Config:      s.buildConfigForResponse(req),
	}, nil
}

// AnalyzeFile analyzes a single Python file
func (s *TupleCheckServiceImpl) AnalyzeFile(ctx context.Context, filePath string, req domain.TupleCheckRequest) (*domain.FileTupleCheck, error) {
	return s.analyzeFile(ctx, filePath, req)
}

func (s *TupleCheckServiceImpl) analyzeFile(ctx context.Context, filePath string, req domain.TupleCheckRequest) (*domain.FileTupleCheck, error) {
	source, err := s.fileReader.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	result, err := s.parser.Parse(ctx, source)
	if err != nil {
		return nil, domain.NewParseError(filePath, err)
	}

	collector := analyzer.NewCollector(collectorOptions(req))
	candidates := collector.Collect(result.RootNode)

	scanner := analyzer.NewScanner(source)
	coords := make([]analyzer.NodeCoords, len(candidates))
	for i, cand := range candidates {
		coords[i] = cand.Coords
	}

	var findings []domain.TupleCheckFinding
	for _, id := range scanner.CheckNodes(coords) {
		cand := candidates[id]
		findings = append(findings, domain.TupleCheckFinding{
			Location: domain.TupleCheckLocation{
				FilePath:    filePath,
				StartLine:   cand.Coords.StartLine,
				StartColumn: cand.Coords.StartCol,
				EndLine:     cand.Coords.EndLine,
				EndColumn:   cand.Coords.EndCol,
			},
			Rule:       domain.RuleSingleTuple,
			Message:    domain.RuleSingleTupleMessage,
			SourceLine: lineText(source, scanner.Index(), cand.Line),
		})
	}

	return &domain.FileTupleCheck{
		FilePath:      filePath,
		Findings:      findings,
		NodesChecked:  len(candidates),
		TotalFindings: len(findings),
	}, nil
}

// collectorOptions maps the request's pointer toggles onto collector options,
// defaulting each unset toggle to enabled.
func collectorOptions(req domain.TupleCheckRequest) analyzer.CollectorOptions {
	return analyzer.CollectorOptions{
		CheckCallArgs:       domain.BoolValue(req.CheckCallArgs, true),
		CheckAssignments:    domain.BoolValue(req.CheckAssignments, true),
		CheckComparisons:    domain.BoolValue(req.CheckComparisons, true),
		CheckComprehensions: domain.BoolValue(req.CheckComprehensions, true),
	}
}

// lineText returns the text of the given 1-based line without its terminator.
func lineText(source []byte, index *analyzer.SourceIndex, line int) string {
	if line < 1 || line > index.LineCount() {
		return ""
	}
	start := index.LineStart(line)
	end := index.LineStart(line + 1)
	if end == 0 || end > len(source) {
		end = len(source)
	}
	return strings.TrimRight(string(source[start:end]), "\r\n")
}

func (s *TupleCheckServiceImpl) sortFiles(files []domain.FileTupleCheck, sortBy domain.TupleCheckSortCriteria) []domain.FileTupleCheck {
	sorted := make([]domain.FileTupleCheck, len(files))
	copy(sorted, files)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FilePath < sorted[j].FilePath
	})

	if sortBy == domain.TupleCheckSortByLocation {
		for f := range sorted {
			findings := sorted[f].Findings
			sort.SliceStable(findings, func(i, j int) bool {
				if findings[i].Location.StartLine != findings[j].Location.StartLine {
					return findings[i].Location.StartLine < findings[j].Location.StartLine
				}
				return findings[i].Location.StartColumn < findings[j].Location.StartColumn
			})
		}
	}

	return sorted
}

func (s *TupleCheckServiceImpl) buildSummary(files []domain.FileTupleCheck, filesProcessed, totalNodes int) domain.TupleCheckSummary {
	totalFindings := 0
	for _, f := range files {
		totalFindings += f.TotalFindings
	}

	return domain.TupleCheckSummary{
		TotalFiles:        filesProcessed,
		FilesWithFindings: len(files),
		TotalFindings:     totalFindings,
		TotalNodesChecked: totalNodes,
	}
}

func (s *TupleCheckServiceImpl) buildConfigForResponse(req domain.TupleCheckRequest) map[string]interface{} {
	return map[string]interface{}{
		"sort_by":              string(req.SortBy),
		"recursive":            req.Recursive,
		"include_patterns":     req.IncludePatterns,
		"exclude_patterns":     req.ExcludePatterns,
		"check_call_args":      domain.BoolValue(req.CheckCallArgs, true),
		"check_assignments":    domain.BoolValue(req.CheckAssignments, true),
		"check_comparisons":    domain.BoolValue(req.CheckComparisons, true),
		"check_comprehensions": domain.BoolValue(req.CheckComprehensions, true),
	}
}
