package service

import (
	"closurec/internal/application/common/logging"
	"closurec/internal/application/common/slogger"
	"closurec/internal/domain/compilation"
	"closurec/internal/port/outbound"
	"closurec/internal/report"
	"context"
	"fmt"
	"time"
)

// Progress messages printed before the slow steps.
const (
	ProgressReading = "Reading files..."
	ProgressSending = "Sending request..."
)

// Pipeline step names used to prefix errors.
const (
	StepLoadInputs   = "load inputs"
	StepBuildRequest = "build request"
	StepCompile      = "compile"
	StepReport       = "report"
	StepWriteOutput  = "write output"
)

// Job describes one compilation run.
type Job struct {
	Inputs        []string
	Output        string
	LevelSelector int
	Verbose       bool
}

// CompileService runs the read, compile, report and write steps in order.
type CompileService struct {
	loader   outbound.InputLoader
	client   outbound.CompilationClient
	renderer report.Renderer
	writer   outbound.ArtifactWriter
}

// NewCompileService creates a CompileService. All collaborators are required.
func NewCompileService(
	loader outbound.InputLoader,
	client outbound.CompilationClient,
	renderer report.Renderer,
	writer outbound.ArtifactWriter,
) *CompileService {
	if loader == nil {
		panic("loader cannot be nil")
	}
	if client == nil {
		panic("client cannot be nil")
	}
	if renderer == nil {
		panic("renderer cannot be nil")
	}
	if writer == nil {
		panic("writer cannot be nil")
	}
	return &CompileService{
		loader:   loader,
		client:   client,
		renderer: renderer,
		writer:   writer,
	}
}

// Run executes job. Compilation errors reported by the service are part of
// the result, not a failure; the returned error is always prefixed with the
// name of the step that failed.
func (s *CompileService) Run(ctx context.Context, job Job) (*compilation.Result, error) {
	ctx, correlationID := logging.NewCorrelationContext(ctx)
	start := time.Now()

	slogger.Info(ctx, "compilation started", slogger.Fields3(
		"correlation_id", correlationID,
		"input_count", len(job.Inputs),
		"output", job.Output,
	))

	s.renderer.Progress(ProgressReading)
	sources, err := s.loader.Load(ctx, job.Inputs)
	if err != nil {
		return nil, stepError(StepLoadInputs, err)
	}

	req, err := compilation.NewRequest(sources, job.LevelSelector)
	if err != nil {
		return nil, stepError(StepBuildRequest, err)
	}

	s.renderer.Progress(ProgressSending)
	result, err := s.client.Compile(ctx, req)
	if err != nil {
		return nil, stepError(StepCompile, err)
	}

	reportJob := report.Job{
		Inputs:  job.Inputs,
		Output:  job.Output,
		Level:   req.Level(),
		Verbose: job.Verbose,
	}
	if err := s.renderer.Render(reportJob, result); err != nil {
		return nil, stepError(StepReport, err)
	}

	if err := s.writer.Write(ctx, job.Output, result.CompiledCode); err != nil {
		return nil, stepError(StepWriteOutput, err)
	}

	slogger.LogPerformance(ctx, "compile_run", time.Since(start), slogger.Fields3(
		"compilation_level", req.Level().String(),
		"warnings", len(result.Warnings),
		"errors", len(result.Errors),
	))

	return result, nil
}

func stepError(step string, err error) error {
	return fmt.Errorf("%s: %w", step, err)
}
