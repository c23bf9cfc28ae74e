package report

import (
	"closurec/internal/domain/compilation"
	"closurec/internal/domain/errors/domain"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted values of the format setting.
var Formats = []string{FormatText, FormatJSON, FormatYAML} //nolint:gochecknoglobals // read-only list

// Job describes the invocation a report belongs to.
type Job struct {
	Inputs  []string
	Output  string
	Level   compilation.Level
	Verbose bool
}

// Renderer presents the progress and outcome of one compilation.
type Renderer interface {
	// Progress announces a pipeline step.
	Progress(message string)
	// Render reports the result in statistics, warnings, errors order.
	Render(job Job, result *compilation.Result) error
}

// NewRenderer returns the renderer for format.
func NewRenderer(format string, w io.Writer, verbose, colored bool) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return &TextRenderer{w: w, reporter: NewReporter(w, verbose, colored)}, nil
	case FormatJSON:
		return &JSONRenderer{w: w}, nil
	case FormatYAML:
		return &YAMLRenderer{w: w}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q (want one of %s)",
			domain.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}

// TextRenderer prints the human-readable report.
type TextRenderer struct {
	w        io.Writer
	reporter *Reporter
}

// Progress prints message on its own line.
func (t *TextRenderer) Progress(message string) {
	_, _ = fmt.Fprintln(t.w, message)
}

// Render prints a blank separator line followed by the three reports.
func (t *TextRenderer) Render(_ Job, result *compilation.Result) error {
	if _, err := fmt.Fprintln(t.w); err != nil {
		return err
	}
	if err := t.reporter.Statistics(result.Statistics); err != nil {
		return err
	}
	if err := t.reporter.Warnings(result.Warnings); err != nil {
		return err
	}
	if err := t.reporter.Errors(result.Errors); err != nil {
		return err
	}
	return t.reporter.ServerErrors(result.ServerErrors)
}

// JSONRenderer writes a Summary inside the standard JSON envelope.
type JSONRenderer struct {
	w io.Writer
}

// Progress is silent so stdout stays a single JSON document.
func (j *JSONRenderer) Progress(string) {}

// Render writes the summary envelope.
func (j *JSONRenderer) Render(job Job, result *compilation.Result) error {
	summary, err := NewSummary(job, result)
	if err != nil {
		return err
	}
	return WriteSuccess(j.w, summary)
}

// YAMLRenderer writes a Summary as a YAML document.
type YAMLRenderer struct {
	w io.Writer
}

// Progress is silent so stdout stays a single YAML document.
func (y *YAMLRenderer) Progress(string) {}

// Render writes the summary document.
func (y *YAMLRenderer) Render(job Job, result *compilation.Result) error {
	summary, err := NewSummary(job, result)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return err
	}
	return enc.Close()
}
