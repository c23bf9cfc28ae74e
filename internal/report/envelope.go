package report

import (
	"encoding/json"
	"io"
	"time"
)

// Response represents the JSON output envelope used by --format json.
// The Data and Error fields are mutually exclusive.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *Error      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Error represents structured error information in a JSON response.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Machine-readable error codes written by WriteError.
const (
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeFileAccess      = "FILE_ACCESS_ERROR"
	ErrCodeNetwork         = "NETWORK_ERROR"
	ErrCodeResponseParse   = "RESPONSE_PARSE_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// now is replaced in tests.
var now = time.Now //nolint:gochecknoglobals // test seam for timestamps

// WriteSuccess writes a success envelope around data.
func WriteSuccess(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

// WriteError writes a failure envelope with a machine-readable code.
func WriteError(w io.Writer, code, message string, details interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: now(),
	})
}
