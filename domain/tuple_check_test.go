package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTupleCheckRequest(t *testing.T) {
	req := DefaultTupleCheckRequest()

	assert.Equal(t, OutputFormatText, req.OutputFormat)
	assert.Equal(t, TupleCheckSortByLocation, req.SortBy)
	assert.True(t, req.Recursive)
	assert.Equal(t, []string{"**/*.py"}, req.IncludePatterns)

	assert.True(t, BoolValue(req.CheckCallArgs, false))
	assert.True(t, BoolValue(req.CheckAssignments, false))
	assert.True(t, BoolValue(req.CheckComparisons, false))
	assert.True(t, BoolValue(req.CheckComprehensions, false))
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TupleCheckRequest)
		wantErr bool
	}{
		{"Valid", func(r *TupleCheckRequest) {}, false},
		{"NoPaths", func(r *TupleCheckRequest) { r.Paths = nil }, true},
		{"BadFormat", func(r *TupleCheckRequest) { r.OutputFormat = "html" }, true},
		{"BadSort", func(r *TupleCheckRequest) { r.SortBy = "severity" }, true},
		{"CSVFormat", func(r *TupleCheckRequest) { r.OutputFormat = OutputFormatCSV }, false},
		{"SortByFile", func(r *TupleCheckRequest) { r.SortBy = TupleCheckSortByFile }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := DefaultTupleCheckRequest()
			req.Paths = []string{"."}
			tt.mutate(req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBoolHelpers(t *testing.T) {
	assert.True(t, *BoolPtr(true))
	assert.False(t, *BoolPtr(false))

	assert.True(t, BoolValue(nil, true))
	assert.False(t, BoolValue(nil, false))
	assert.False(t, BoolValue(BoolPtr(false), true))
	assert.True(t, BoolValue(BoolPtr(true), false))
}

func TestHasFindings(t *testing.T) {
	file := &FileTupleCheck{}
	assert.False(t, file.HasFindings())

	file.Findings = []TupleCheckFinding{{Rule: RuleSingleTuple}}
	assert.True(t, file.HasFindings())
}

func TestDomainErrorWrapping(t *testing.T) {
	cause := errors.New("underlying")
	err := NewParseError("bad.py", cause)

	var domainErr DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, ErrCodeParseError, domainErr.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bad.py")
	assert.Contains(t, err.Error(), "PARSE_ERROR")
}

func TestDomainErrorWithoutCause(t *testing.T) {
	err := NewInvalidInputError("missing paths", nil)
	assert.Contains(t, err.Error(), "INVALID_INPUT")
	assert.Contains(t, err.Error(), "missing paths")
	assert.NoError(t, errors.Unwrap(err))
}
