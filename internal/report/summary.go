package report

import "closurec/internal/domain/compilation"

// Summary is the machine-readable form of a report.
type Summary struct {
	CompilationLevel string                    `json:"compilationLevel" yaml:"compilationLevel"`
	Inputs           []string                  `json:"inputs" yaml:"inputs"`
	Output           string                    `json:"output" yaml:"output"`
	CompiledCode     bool                      `json:"compiledCode" yaml:"compiledCode"`
	CompiledBytes    int                       `json:"compiledBytes" yaml:"compiledBytes"`
	Statistics       *StatisticsSummary        `json:"statistics" yaml:"statistics"`
	WarningCount     int                       `json:"warningCount" yaml:"warningCount"`
	Warnings         []compilation.Diagnostic  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	ErrorCount       int                       `json:"errorCount" yaml:"errorCount"`
	ServerErrors     []compilation.ServerError `json:"serverErrors,omitempty" yaml:"serverErrors,omitempty"`
}

// StatisticsSummary carries raw byte counts next to their formatted form.
type StatisticsSummary struct {
	compilation.Statistics `yaml:",inline"`

	OriginalSizeText       string `json:"originalSizeText" yaml:"originalSizeText"`
	OriginalGzipSizeText   string `json:"originalGzipSizeText" yaml:"originalGzipSizeText"`
	CompressedSizeText     string `json:"compressedSizeText" yaml:"compressedSizeText"`
	CompressedGzipSizeText string `json:"compressedGzipSizeText" yaml:"compressedGzipSizeText"`
}

// NewSummary builds the summary of result. Warning detail is included only
// for verbose jobs; error detail is never included, matching the text report.
func NewSummary(job Job, result *compilation.Result) (*Summary, error) {
	s := &Summary{
		CompilationLevel: job.Level.String(),
		Inputs:           job.Inputs,
		Output:           job.Output,
		CompiledCode:     result.HasCompiledCode(),
		CompiledBytes:    len(result.Code()),
		WarningCount:     len(result.Warnings),
		ErrorCount:       len(result.Errors),
		ServerErrors:     result.ServerErrors,
	}
	if job.Verbose {
		s.Warnings = result.Warnings
	}

	if result.Statistics != nil {
		stats, err := newStatisticsSummary(*result.Statistics)
		if err != nil {
			return nil, err
		}
		s.Statistics = stats
	}

	return s, nil
}

func newStatisticsSummary(stats compilation.Statistics) (*StatisticsSummary, error) {
	out := &StatisticsSummary{Statistics: stats}
	for _, f := range []struct {
		size int64
		dst  *string
	}{
		{stats.OriginalSize, &out.OriginalSizeText},
		{stats.OriginalGzipSize, &out.OriginalGzipSizeText},
		{stats.CompressedSize, &out.CompressedSizeText},
		{stats.CompressedGzipSize, &out.CompressedGzipSizeText},
	} {
		text, err := FormatSize(f.size)
		if err != nil {
			return nil, err
		}
		*f.dst = text
	}
	return out, nil
}
