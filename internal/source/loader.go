// Package source loads JavaScript input files for submission.
package source

import (
	"closurec/internal/application/common/slogger"
	"closurec/internal/domain/errors/domain"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
)

// Loader reads input files fully and in order.
type Loader struct {
	fs afero.Fs
}

// NewLoader returns a Loader reading from fs. A nil fs means the OS filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load returns the contents of paths in the same order. The first file that
// cannot be read aborts the load; no partial result is returned.
func (l *Loader) Load(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no input files given", domain.ErrInvalidArgument)
	}

	start := time.Now()
	contents := make([]string, 0, len(paths))
	total := 0

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := l.readFile(path)
		if err != nil {
			slogger.Debug(ctx, "input file not readable", slogger.Fields2("file_path", path, "error", err.Error()))
			return nil, err
		}

		slogger.Debug(ctx, "input file read", slogger.Fields2("file_path", path, "bytes", len(text)))
		contents = append(contents, text)
		total += len(text)
	}

	slogger.LogPerformance(ctx, "load_inputs", time.Since(start), slogger.Fields2(
		"file_count", len(paths),
		"total_bytes", total,
	))

	return contents, nil
}

// readFile opens, reads and closes a single file.
func (l *Loader) readFile(path string) (text string, err error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return "", fileError(path, err)
	}
	if info.IsDir() {
		return "", fileError(path, errors.New("is a directory"))
	}

	f, err := l.fs.Open(path)
	if err != nil {
		return "", fileError(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			text, err = "", fileError(path, cerr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fileError(path, err)
	}
	return string(data), nil
}

func fileError(path string, cause error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrFileAccess, path, cause)
}
