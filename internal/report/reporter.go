// Package report renders compilation results for people and for tools.
package report

import (
	"closurec/internal/domain/compilation"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Notices printed when a category is empty.
const (
	NoStatistics = "No statistics!"
	NoWarnings   = "No warnings!"
	NoErrors     = "No errors!"
)

// Reporter writes the human-readable statistics, warnings and errors
// reports. It holds no state besides its output settings.
type Reporter struct {
	w       io.Writer
	verbose bool

	notice  *color.Color
	warning *color.Color
	failure *color.Color
	label   *color.Color
}

// NewReporter returns a Reporter writing to w. When colored is false the
// output is plain text regardless of the terminal.
func NewReporter(w io.Writer, verbose, colored bool) *Reporter {
	r := &Reporter{
		w:       w,
		verbose: verbose,
		notice:  color.New(color.FgGreen),
		warning: color.New(color.FgYellow, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		label:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.notice, r.warning, r.failure, r.label} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Statistics prints the gzipped and uncompressed sizes before and after
// compilation, or the "no statistics" notice when stats is nil.
func (r *Reporter) Statistics(stats *compilation.Statistics) error {
	if stats == nil {
		_, err := r.notice.Fprintln(r.w, NoStatistics)
		return err
	}

	originalGzip, err := FormatSize(stats.OriginalGzipSize)
	if err != nil {
		return err
	}
	original, err := FormatSize(stats.OriginalSize)
	if err != nil {
		return err
	}
	compressedGzip, err := FormatSize(stats.CompressedGzipSize)
	if err != nil {
		return err
	}
	compressed, err := FormatSize(stats.CompressedSize)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.w, "%s %s gzipped (%s uncompressed)\n",
		r.label.Sprint("Original Size:"), originalGzip, original); err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.w, "%s %s gzipped (%s uncompressed)\n",
		r.label.Sprint("Compiled Size:"), compressedGzip, compressed)
	return err
}

// Warnings prints the warning count and, in verbose mode, every warning in
// the order the service reported them.
func (r *Reporter) Warnings(warnings []compilation.Diagnostic) error {
	if len(warnings) == 0 {
		_, err := r.notice.Fprintln(r.w, NoWarnings)
		return err
	}

	if _, err := r.warning.Fprintf(r.w, "%d warnings\n", len(warnings)); err != nil {
		return err
	}
	if !r.verbose {
		return nil
	}

	for _, w := range warnings {
		if _, err := fmt.Fprintf(r.w, "File: %s\n\tType: %s\n\tLine: %d\n\tMessage: %s\n\tCode: %s\n",
			w.File, w.Type, w.LineNumber, w.Message, w.LineText); err != nil {
			return err
		}
	}
	return nil
}

// Errors prints the error count. Per-error detail is never printed, even in
// verbose mode.
func (r *Reporter) Errors(errs []compilation.Diagnostic) error {
	if len(errs) == 0 {
		_, err := r.notice.Fprintln(r.w, NoErrors)
		return err
	}

	_, err := r.failure.Fprintf(r.w, "%d errors\n", len(errs))
	return err
}

// ServerErrors prints request-level failures reported by the service. It
// prints nothing when there are none.
func (r *Reporter) ServerErrors(errs []compilation.ServerError) error {
	if len(errs) == 0 {
		return nil
	}

	if _, err := r.failure.Fprintf(r.w, "%d server errors\n", len(errs)); err != nil {
		return err
	}
	for _, se := range errs {
		if _, err := fmt.Fprintf(r.w, "\t%d: %s\n", se.Code, se.Message); err != nil {
			return err
		}
	}
	return nil
}
