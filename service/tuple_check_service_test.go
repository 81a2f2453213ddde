package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/tuplecheck/domain"
	"github.com/ludo-technologies/tuplecheck/internal/analyzer"
)

func writePythonFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyzeFileFindings(t *testing.T) {
	dir := t.TempDir()
	path := writePythonFile(t, dir, "sample.py", "x = (\"only_item\")\ny = (\"a\", \"b\")\nz = foo((arg))\n")

	svc := NewTupleCheckService(NewSilentProgressReporter())
	req := *domain.DefaultTupleCheckRequest()

	result, err := svc.AnalyzeFile(context.Background(), path, req)
	require.NoError(t, err)

	require.Len(t, result.Findings, 2)
	assert.Equal(t, path, result.FilePath)
	assert.Equal(t, 2, result.TotalFindings)
	assert.Greater(t, result.NodesChecked, 0)

	first := result.Findings[0]
	assert.Equal(t, domain.RuleSingleTuple, first.Rule)
	assert.Equal(t, domain.RuleSingleTupleMessage, first.Message)
	assert.Equal(t, 1, first.Location.StartLine)
	assert.Equal(t, `x = ("only_item")`, first.SourceLine)

	second := result.Findings[1]
	assert.Equal(t, 3, second.Location.StartLine)
	assert.Equal(t, "z = foo((arg))", second.SourceLine)
}

func TestAnalyzeFileCleanSource(t *testing.T) {
	dir := t.TempDir()
	path := writePythonFile(t, dir, "clean.py", "x = (\"item\",)\ny = foo(arg)\n")

	svc := NewTupleCheckService(NewSilentProgressReporter())

	result, err := svc.AnalyzeFile(context.Background(), path, *domain.DefaultTupleCheckRequest())
	require.NoError(t, err)
	assert.False(t, result.HasFindings())
	assert.Greater(t, result.NodesChecked, 0)
}

func TestAnalyzeFileSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := writePythonFile(t, dir, "broken.py", "def f(:\n")

	svc := NewTupleCheckService(NewSilentProgressReporter())

	_, err := svc.AnalyzeFile(context.Background(), path, *domain.DefaultTupleCheckRequest())
	require.Error(t, err)

	domainErr, ok := err.(domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeParseError, domainErr.Code)
}

func TestAnalyzeBatchSurvivesBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := writePythonFile(t, dir, "good.py", "a = (b)\n")
	broken := writePythonFile(t, dir, "broken.py", "def f(:\n")

	svc := NewTupleCheckService(NewSilentProgressReporter())
	req := *domain.DefaultTupleCheckRequest()
	req.Paths = []string{good, broken}

	response, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, response.Summary.TotalFiles)
	assert.Equal(t, 1, response.Summary.TotalFindings)
	require.Len(t, response.Errors, 1)
	assert.Contains(t, response.Errors[0], broken)
}

func TestAnalyzeSortsFilesAndFindings(t *testing.T) {
	dir := t.TempDir()
	fileB := writePythonFile(t, dir, "b.py", "x = (y)\n")
	fileA := writePythonFile(t, dir, "a.py", "q = (r)\ns = (t)\n")

	svc := NewTupleCheckService(NewSilentProgressReporter())
	req := *domain.DefaultTupleCheckRequest()
	req.Paths = []string{fileB, fileA}
	req.SortBy = domain.TupleCheckSortByLocation

	response, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, response.Files, 2)
	assert.Equal(t, fileA, response.Files[0].FilePath)
	assert.Equal(t, fileB, response.Files[1].FilePath)

	findings := response.Files[0].Findings
	require.Len(t, findings, 2)
	assert.Less(t, findings[0].Location.StartLine, findings[1].Location.StartLine)
}

func TestAnalyzeRespectsContextCancellation(t *testing.T) {
	dir := t.TempDir()
	path := writePythonFile(t, dir, "a.py", "x = 1\n")

	svc := NewTupleCheckService(NewSilentProgressReporter())
	req := *domain.DefaultTupleCheckRequest()
	req.Paths = []string{path}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeDisabledContexts(t *testing.T) {
	dir := t.TempDir()
	path := writePythonFile(t, dir, "a.py", "x = (y)\nfoo((z))\n")

	svc := NewTupleCheckService(NewSilentProgressReporter())
	req := *domain.DefaultTupleCheckRequest()
	req.Paths = []string{path}
	req.CheckAssignments = domain.BoolPtr(false)

	response, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	// Only the call argument finding remains
	require.Len(t, response.Files, 1)
	require.Len(t, response.Files[0].Findings, 1)
	assert.Equal(t, 2, response.Files[0].Findings[0].Location.StartLine)
}

func TestAnalyzeResponseMetadata(t *testing.T) {
	dir := t.TempDir()
	path := writePythonFile(t, dir, "a.py", "x = 1\n")

	svc := NewTupleCheckService(NewSilentProgressReporter())
	req := *domain.DefaultTupleCheckRequest()
	req.Paths = []string{path}

	response, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, response.GeneratedAt)
	cfg, ok := response.Config.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, cfg["check_call_args"])
	assert.Equal(t, "location", cfg["sort_by"])
}

func TestLineText(t *testing.T) {
	source := []byte("first\nsecond\r\nthird")
	index := analyzer.NewSourceIndex(source)

	assert.Equal(t, "first", lineText(source, index, 1))
	assert.Equal(t, "second", lineText(source, index, 2))
	assert.Equal(t, "third", lineText(source, index, 3))
	assert.Equal(t, "", lineText(source, index, 0))
	assert.Equal(t, "", lineText(source, index, 4))
}
