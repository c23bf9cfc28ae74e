// Package artifact persists compiled code to the output file.
package artifact

import (
	"closurec/internal/application/common/slogger"
	"closurec/internal/domain/errors/domain"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// DefaultFileMode is the permission used when the output file is created.
const DefaultFileMode os.FileMode = 0o644

// Writer writes compiled code to disk.
type Writer struct {
	fs   afero.Fs
	mode os.FileMode
}

// NewWriter returns a Writer backed by fs. A nil fs means the OS filesystem.
func NewWriter(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs, mode: DefaultFileMode}
}

// Write creates or truncates path and writes code into it. A nil code still
// creates the file and leaves it empty; the service returns no code when the
// compilation failed completely.
func (w *Writer) Write(ctx context.Context, path string, code *string) (err error) {
	if path == "" {
		return fmt.Errorf("%w: output path is empty", domain.ErrInvalidArgument)
	}

	f, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, w.mode)
	if err != nil {
		return fileError(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fileError(path, cerr)
		}
	}()

	if code == nil {
		slogger.Warn(ctx, "service returned no compiled code, output file is empty", slogger.Field("file_path", path))
		return nil
	}

	if _, err := io.WriteString(f, *code); err != nil {
		return fileError(path, err)
	}

	slogger.Debug(ctx, "compiled code written", slogger.Fields2("file_path", path, "bytes", len(*code)))
	return nil
}

func fileError(path string, cause error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrFileAccess, path, cause)
}
