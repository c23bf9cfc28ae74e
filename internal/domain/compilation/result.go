package compilation

// Result is the parsed response of one compilation. Absent categories are
// nil; callers must not mutate it after parsing.
type Result struct {
	CompiledCode *string
	Statistics   *Statistics
	Warnings     []Diagnostic
	Errors       []Diagnostic
	ServerErrors []ServerError
}

// Statistics holds the byte counts reported by the service.
type Statistics struct {
	OriginalSize       int64 `json:"originalSize" yaml:"originalSize"`
	OriginalGzipSize   int64 `json:"originalGzipSize" yaml:"originalGzipSize"`
	CompressedSize     int64 `json:"compressedSize" yaml:"compressedSize"`
	CompressedGzipSize int64 `json:"compressedGzipSize" yaml:"compressedGzipSize"`
}

// Valid reports whether every byte count is non-negative.
func (s Statistics) Valid() bool {
	return s.OriginalSize >= 0 && s.OriginalGzipSize >= 0 &&
		s.CompressedSize >= 0 && s.CompressedGzipSize >= 0
}

// Diagnostic is a single warning or error reported by the compiler.
type Diagnostic struct {
	File       string `json:"file" yaml:"file"`
	Type       string `json:"type" yaml:"type"`
	LineNumber int    `json:"lineNumber" yaml:"lineNumber"`
	CharNumber int    `json:"charNumber,omitempty" yaml:"charNumber,omitempty"`
	Message    string `json:"message" yaml:"message"`
	LineText   string `json:"lineText" yaml:"lineText"`
}

// ServerError is a request-level failure reported by the service itself,
// such as an unknown parameter or an oversized payload.
type ServerError struct {
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// HasCompiledCode reports whether the service returned compiled code.
func (r *Result) HasCompiledCode() bool {
	return r != nil && r.CompiledCode != nil
}

// Code returns the compiled code, or "" when it is absent.
func (r *Result) Code() string {
	if r == nil || r.CompiledCode == nil {
		return ""
	}
	return *r.CompiledCode
}
