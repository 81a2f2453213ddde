package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/tuplecheck/domain"
)

func sampleResponse() *domain.TupleCheckResponse {
	return &domain.TupleCheckResponse{
		Files: []domain.FileTupleCheck{
			{
				FilePath: "pkg/models.py",
				Findings: []domain.TupleCheckFinding{
					{
						Location: domain.TupleCheckLocation{
							FilePath:    "pkg/models.py",
							StartLine:   3,
							StartColumn: 4,
							EndLine:     3,
							EndColumn:   15,
						},
						Rule:       domain.RuleSingleTuple,
						Message:    domain.RuleSingleTupleMessage,
						SourceLine: `x = ("only_item")`,
					},
				},
				NodesChecked:  5,
				TotalFindings: 1,
			},
		},
		Summary: domain.TupleCheckSummary{
			TotalFiles:        2,
			FilesWithFindings: 1,
			TotalFindings:     1,
			TotalNodesChecked: 9,
		},
		GeneratedAt: "2025-01-01T00:00:00Z",
		Version:     "test",
	}
}

func TestFormatText(t *testing.T) {
	formatter := NewTupleCheckFormatter()

	output, err := formatter.Format(sampleResponse(), domain.OutputFormatText)
	require.NoError(t, err)

	// Columns are printed 1-based in text output
	assert.Contains(t, output, "pkg/models.py:3:5: STC001")
	assert.Contains(t, output, domain.RuleSingleTupleMessage)
	assert.Contains(t, output, `    x = ("only_item")`)
	assert.Contains(t, output, "Checked 2 files (9 candidate nodes): 1 findings in 1 files")
}

func TestFormatTextWithErrors(t *testing.T) {
	formatter := NewTupleCheckFormatter()
	response := sampleResponse()
	response.Errors = []string{"[bad.py] failed to parse file: bad.py"}
	response.Warnings = []string{"something odd"}

	output, err := formatter.Format(response, domain.OutputFormatText)
	require.NoError(t, err)
	assert.Contains(t, output, "Errors:")
	assert.Contains(t, output, "bad.py")
	assert.Contains(t, output, "Warnings:")
	assert.Contains(t, output, "something odd")
}

func TestFormatJSON(t *testing.T) {
	formatter := NewTupleCheckFormatter()

	output, err := formatter.Format(sampleResponse(), domain.OutputFormatJSON)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))

	summary, ok := decoded["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), summary["total_findings"])

	results, ok := decoded["results"].([]interface{})
	require.True(t, ok)
	require.Len(t, results, 1)

	file := results[0].(map[string]interface{})
	assert.Equal(t, "pkg/models.py", file["file_path"])

	findings := file["findings"].([]interface{})
	require.Len(t, findings, 1)
	finding := findings[0].(map[string]interface{})
	assert.Equal(t, "STC001", finding["rule"])
	assert.Equal(t, float64(3), finding["line"])
	assert.Equal(t, float64(4), finding["column"])
}

func TestFormatYAML(t *testing.T) {
	formatter := NewTupleCheckFormatter()

	output, err := formatter.Format(sampleResponse(), domain.OutputFormatYAML)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(output), &decoded))
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "results")
}

func TestFormatCSV(t *testing.T) {
	formatter := NewTupleCheckFormatter()

	output, err := formatter.Format(sampleResponse(), domain.OutputFormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "File,Line,Column,Rule,Message", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "pkg/models.py,3,4,STC001,"))
}

func TestFormatUnsupported(t *testing.T) {
	formatter := NewTupleCheckFormatter()

	_, err := formatter.Format(sampleResponse(), domain.OutputFormat("html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestWrite(t *testing.T) {
	formatter := NewTupleCheckFormatter()
	var buf bytes.Buffer

	err := formatter.Write(sampleResponse(), domain.OutputFormatText, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "STC001")
}
