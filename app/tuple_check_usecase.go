package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/tuplecheck/domain"
)

// TupleCheckUseCase orchestrates the single-tuple analysis workflow
type TupleCheckUseCase struct {
	service      domain.TupleCheckService
	fileReader   domain.FileReader
	formatter    domain.TupleCheckFormatter
	configLoader domain.TupleCheckConfigurationLoader
	progress     domain.ProgressReporter
}

// NewTupleCheckUseCase creates a new tuple check use case
func NewTupleCheckUseCase(
	service domain.TupleCheckService,
	fileReader domain.FileReader,
	formatter domain.TupleCheckFormatter,
	configLoader domain.TupleCheckConfigurationLoader,
	progress domain.ProgressReporter,
) *TupleCheckUseCase {
	return &TupleCheckUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		progress:     progress,
	}
}

// Execute performs the complete analysis workflow
func (uc *TupleCheckUseCase) Execute(ctx context.Context, req domain.TupleCheckRequest) error {
	response, err := uc.AnalyzeAndReturn(ctx, req)
	if err != nil {
		return err
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return domain.NewConfigError("failed to load configuration", err)
	}

	if finalReq.OutputPath != "" {
		file, err := os.Create(finalReq.OutputPath)
		if err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to create output file: %s", finalReq.OutputPath), err)
		}
		defer file.Close()

		if err := uc.formatter.Write(response, finalReq.OutputFormat, file); err != nil {
			return domain.NewOutputError("failed to write output", err)
		}

		absPath, err := filepath.Abs(finalReq.OutputPath)
		if err != nil {
			absPath = finalReq.OutputPath
		}
		formatName := strings.ToUpper(string(finalReq.OutputFormat))
		fmt.Fprintf(os.Stderr, "%s report generated: %s\n", formatName, absPath)
		return nil
	}

	if err := uc.formatter.Write(response, finalReq.OutputFormat, finalReq.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// AnalyzeAndReturn performs the analysis and returns the response without formatting
func (uc *TupleCheckUseCase) AnalyzeAndReturn(ctx context.Context, req domain.TupleCheckRequest) (*domain.TupleCheckResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	files, err := uc.fileReader.CollectPythonFiles(
		finalReq.Paths,
		finalReq.Recursive,
		finalReq.IncludePatterns,
		finalReq.ExcludePatterns,
	)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}

	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no Python files found in the specified paths", nil)
	}

	if uc.progress != nil {
		uc.progress.StartProgress(len(files))
		defer uc.progress.FinishProgress()
	}

	finalReq.Paths = files

	response, err := uc.service.Analyze(ctx, *finalReq)
	if err != nil {
		return nil, domain.NewAnalysisError("tuple check analysis failed", err)
	}

	return response, nil
}

// validateRequest validates the basic request fields
func (uc *TupleCheckUseCase) validateRequest(req domain.TupleCheckRequest) error {
	return req.Validate()
}

// loadAndMergeConfig loads file configuration and overlays the request on it
func (uc *TupleCheckUseCase) loadAndMergeConfig(req domain.TupleCheckRequest) (*domain.TupleCheckRequest, error) {
	if uc.configLoader == nil {
		return &req, nil
	}

	var base *domain.TupleCheckRequest
	if req.ConfigPath != "" {
		loaded, err := uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return nil, err
		}
		base = loaded
	} else {
		base = uc.configLoader.LoadDefaultConfig()
	}

	return uc.configLoader.MergeConfig(base, &req), nil
}
