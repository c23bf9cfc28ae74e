package compilation

import (
	"closurec/internal/domain/errors/domain"
	"fmt"
)

// Output format and warning verbosity requested from the service. These are
// fixed policy, not user settings.
const (
	OutputFormatJSON    = "json"
	WarningLevelVerbose = "VERBOSE"
)

// Output information categories requested from the service.
const (
	OutputInfoCompiledCode = "compiled_code"
	OutputInfoWarnings     = "warnings"
	OutputInfoErrors       = "errors"
	OutputInfoStatistics   = "statistics"
)

// Request is an immutable compilation job: the ordered source texts and the
// optimization level.
type Request struct {
	sources []string
	level   Level
}

// NewRequest builds a Request from the loaded sources and a level selector.
func NewRequest(sources []string, selector int) (Request, error) {
	level, err := LevelFromSelector(selector)
	if err != nil {
		return Request{}, err
	}
	if len(sources) == 0 {
		return Request{}, fmt.Errorf("%w: at least one source is required", domain.ErrInvalidArgument)
	}

	copied := make([]string, len(sources))
	copy(copied, sources)

	return Request{sources: copied, level: level}, nil
}

// Sources returns a copy of the source texts in submission order.
func (r Request) Sources() []string {
	out := make([]string, len(r.sources))
	copy(out, r.sources)
	return out
}

// Level returns the requested compilation level.
func (r Request) Level() Level {
	return r.level
}

// OutputFormat returns the response format requested from the service.
func (r Request) OutputFormat() string {
	return OutputFormatJSON
}

// OutputInfo returns the output categories requested from the service.
func (r Request) OutputInfo() []string {
	return []string{
		OutputInfoCompiledCode,
		OutputInfoWarnings,
		OutputInfoErrors,
		OutputInfoStatistics,
	}
}

// WarningLevel returns the requested warning verbosity.
func (r Request) WarningLevel() string {
	return WarningLevelVerbose
}

// SourceBytes returns the total size of the submitted sources.
func (r Request) SourceBytes() int {
	n := 0
	for _, s := range r.sources {
		n += len(s)
	}
	return n
}
