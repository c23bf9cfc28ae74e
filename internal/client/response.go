package client

import (
	"bytes"
	"closurec/internal/domain/compilation"
	"closurec/internal/domain/errors/domain"
	"encoding/json"
	"fmt"
)

// compileResponse mirrors the service's JSON output. Every key is optional.
type compileResponse struct {
	CompiledCode *string          `json:"compiledCode"`
	Statistics   *statisticsDTO   `json:"statistics"`
	Warnings     []diagnosticDTO  `json:"warnings"`
	Errors       []diagnosticDTO  `json:"errors"`
	ServerErrors []serverErrorDTO `json:"serverErrors"`
}

// statisticsDTO uses pointers so a missing count can be told apart from zero.
type statisticsDTO struct {
	OriginalSize       *int64 `json:"originalSize"`
	OriginalGzipSize   *int64 `json:"originalGzipSize"`
	CompressedSize     *int64 `json:"compressedSize"`
	CompressedGzipSize *int64 `json:"compressedGzipSize"`
}

// toStatistics requires all four counts to be present and non-negative.
func (d *statisticsDTO) toStatistics() (*compilation.Statistics, error) {
	if d.OriginalSize == nil || d.OriginalGzipSize == nil ||
		d.CompressedSize == nil || d.CompressedGzipSize == nil {
		return nil, fmt.Errorf("%w: statistics object is missing a byte count", domain.ErrResponseParse)
	}
	stats := compilation.Statistics{
		OriginalSize:       *d.OriginalSize,
		OriginalGzipSize:   *d.OriginalGzipSize,
		CompressedSize:     *d.CompressedSize,
		CompressedGzipSize: *d.CompressedGzipSize,
	}
	if !stats.Valid() {
		return nil, fmt.Errorf("%w: negative byte count in statistics", domain.ErrResponseParse)
	}
	return &stats, nil
}

// diagnosticDTO carries the message under "warning" for warnings and under
// "error" for errors.
type diagnosticDTO struct {
	File    string `json:"file"`
	Type    string `json:"type"`
	Lineno  int    `json:"lineno"`
	Charno  int    `json:"charno"`
	Warning string `json:"warning"`
	Error   string `json:"error"`
	Line    string `json:"line"`
}

type serverErrorDTO struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// DecodeResult parses a service response body into a Result.
func DecodeResult(data []byte) (*compilation.Result, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: response is not a JSON object", domain.ErrResponseParse)
	}

	var resp compileResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrResponseParse, err)
	}

	result := &compilation.Result{
		CompiledCode: resp.CompiledCode,
		Warnings:     toDiagnostics(resp.Warnings),
		Errors:       toDiagnostics(resp.Errors),
	}

	if resp.Statistics != nil {
		stats, err := resp.Statistics.toStatistics()
		if err != nil {
			return nil, err
		}
		result.Statistics = stats
	}

	for _, se := range resp.ServerErrors {
		result.ServerErrors = append(result.ServerErrors, compilation.ServerError{
			Code:    se.Code,
			Message: se.Error,
		})
	}

	return result, nil
}

func toDiagnostics(in []diagnosticDTO) []compilation.Diagnostic {
	if len(in) == 0 {
		return nil
	}
	out := make([]compilation.Diagnostic, 0, len(in))
	for _, d := range in {
		msg := d.Warning
		if msg == "" {
			msg = d.Error
		}
		out = append(out, compilation.Diagnostic{
			File:       d.File,
			Type:       d.Type,
			LineNumber: d.Lineno,
			CharNumber: d.Charno,
			Message:    msg,
			LineText:   d.Line,
		})
	}
	return out
}
