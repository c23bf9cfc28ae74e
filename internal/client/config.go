package client

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default configuration values.
const (
	// DefaultAPIURL is the Closure Compiler web service endpoint.
	DefaultAPIURL = "https://closure-compiler.appspot.com/compile"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 60 * time.Second
)

// Supported URL schemes.
const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"
)

// Config holds the client configuration for reaching the compilation service.
type Config struct {
	// APIURL is the full URL the compilation request is posted to.
	// Must include the scheme (http:// or https://).
	APIURL string

	// Timeout bounds the whole request, including reading the response.
	// Must be a positive duration.
	Timeout time.Duration
}

// DefaultConfig returns a Config pointing at the public compilation service.
func DefaultConfig() Config {
	return Config{
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
	}
}

// Validate validates the configuration and returns an error if any field is invalid.
//
// Validation rules:
//   - APIURL must not be empty
//   - APIURL must start with http:// or https://
//   - Timeout must be positive (greater than zero)
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("invalid configuration: API URL cannot be empty")
	}

	if !strings.HasPrefix(c.APIURL, schemeHTTP) && !strings.HasPrefix(c.APIURL, schemeHTTPS) {
		return fmt.Errorf("invalid configuration: API URL must have http:// or https:// scheme, got %q", c.APIURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("invalid configuration: timeout must be positive, got %v", c.Timeout)
	}

	return nil
}
