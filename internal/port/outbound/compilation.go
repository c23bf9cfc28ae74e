package outbound

import (
	"closurec/internal/domain/compilation"
	"context"
)

// InputLoader reads the JavaScript sources of a job.
type InputLoader interface {
	// Load returns the file contents in the order of paths.
	Load(ctx context.Context, paths []string) ([]string, error)
}

// CompilationClient submits a request to the remote compilation service.
type CompilationClient interface {
	Compile(ctx context.Context, req compilation.Request) (*compilation.Result, error)
}

// ArtifactWriter persists the compiled code. A nil code produces an empty file.
type ArtifactWriter interface {
	Write(ctx context.Context, path string, code *string) error
}
