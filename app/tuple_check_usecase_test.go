package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/tuplecheck/domain"
)

type stubService struct {
	response *domain.TupleCheckResponse
	err      error
	lastReq  domain.TupleCheckRequest
}

func (s *stubService) Analyze(ctx context.Context, req domain.TupleCheckRequest) (*domain.TupleCheckResponse, error) {
	s.lastReq = req
	return s.response, s.err
}

func (s *stubService) AnalyzeFile(ctx context.Context, filePath string, req domain.TupleCheckRequest) (*domain.FileTupleCheck, error) {
	return nil, errors.New("not implemented")
}

type stubFileReader struct {
	files []string
	err   error
}

func (s *stubFileReader) CollectPythonFiles(paths []string, recursive bool, include, exclude []string) ([]string, error) {
	return s.files, s.err
}

func (s *stubFileReader) ReadFile(path string) ([]byte, error) { return nil, nil }

func (s *stubFileReader) IsValidPythonFile(path string) bool { return true }

func (s *stubFileReader) FileExists(path string) (bool, error) { return true, nil }

type stubFormatter struct {
	output string
	err    error
}

func (s *stubFormatter) Format(response *domain.TupleCheckResponse, format domain.OutputFormat) (string, error) {
	return s.output, s.err
}

func (s *stubFormatter) Write(response *domain.TupleCheckResponse, format domain.OutputFormat, writer io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := writer.Write([]byte(s.output))
	return err
}

type stubProgress struct {
	started  int
	finished int
}

func (s *stubProgress) StartProgress(totalFiles int) { s.started++ }

func (s *stubProgress) UpdateProgress(currentFile string, processed, total int) {}

func (s *stubProgress) FinishProgress() { s.finished++ }

func emptyResponse() *domain.TupleCheckResponse {
	return &domain.TupleCheckResponse{
		Summary: domain.TupleCheckSummary{TotalFiles: 1},
	}
}

func newRequest(paths ...string) domain.TupleCheckRequest {
	req := *domain.DefaultTupleCheckRequest()
	req.Paths = paths
	return req
}

func TestExecuteWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	service := &stubService{response: emptyResponse()}
	uc := NewTupleCheckUseCase(
		service,
		&stubFileReader{files: []string{"a.py"}},
		&stubFormatter{output: "formatted output\n"},
		nil,
		nil,
	)

	req := newRequest(".")
	req.OutputWriter = &buf

	require.NoError(t, uc.Execute(context.Background(), req))
	assert.Equal(t, "formatted output\n", buf.String())

	// The service receives the collected file list, not the raw paths
	assert.Equal(t, []string{"a.py"}, service.lastReq.Paths)
}

func TestExecuteWritesToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "report.json")
	uc := NewTupleCheckUseCase(
		&stubService{response: emptyResponse()},
		&stubFileReader{files: []string{"a.py"}},
		&stubFormatter{output: "{}"},
		nil,
		nil,
	)

	req := newRequest(".")
	req.OutputFormat = domain.OutputFormatJSON
	req.OutputPath = outPath

	require.NoError(t, uc.Execute(context.Background(), req))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
}

func TestAnalyzeAndReturnValidation(t *testing.T) {
	uc := NewTupleCheckUseCase(&stubService{}, &stubFileReader{}, &stubFormatter{}, nil, nil)

	_, err := uc.AnalyzeAndReturn(context.Background(), newRequest())
	require.Error(t, err)

	domainErr, ok := err.(domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeInvalidInput, domainErr.Code)
}

func TestAnalyzeAndReturnNoFilesFound(t *testing.T) {
	uc := NewTupleCheckUseCase(
		&stubService{},
		&stubFileReader{files: nil},
		&stubFormatter{},
		nil,
		nil,
	)

	_, err := uc.AnalyzeAndReturn(context.Background(), newRequest("empty-dir"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Python files found")
}

func TestAnalyzeAndReturnCollectError(t *testing.T) {
	uc := NewTupleCheckUseCase(
		&stubService{},
		&stubFileReader{err: errors.New("disk gone")},
		&stubFormatter{},
		nil,
		nil,
	)

	_, err := uc.AnalyzeAndReturn(context.Background(), newRequest("."))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestAnalyzeAndReturnServiceError(t *testing.T) {
	uc := NewTupleCheckUseCase(
		&stubService{err: errors.New("analysis blew up")},
		&stubFileReader{files: []string{"a.py"}},
		&stubFormatter{},
		nil,
		nil,
	)

	_, err := uc.AnalyzeAndReturn(context.Background(), newRequest("."))
	require.Error(t, err)

	domainErr, ok := err.(domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeAnalysisError, domainErr.Code)
}

func TestAnalyzeAndReturnProgressLifecycle(t *testing.T) {
	progress := &stubProgress{}
	uc := NewTupleCheckUseCase(
		&stubService{response: emptyResponse()},
		&stubFileReader{files: []string{"a.py", "b.py"}},
		&stubFormatter{},
		nil,
		progress,
	)

	_, err := uc.AnalyzeAndReturn(context.Background(), newRequest("."))
	require.NoError(t, err)
	assert.Equal(t, 1, progress.started)
	assert.Equal(t, 1, progress.finished)
}
