// Package domain provides domain-specific error definitions and utilities.
package domain

import "errors"

// Input and output errors.
var (
	ErrFileAccess = errors.New("file access failed")
)

// Remote compilation errors.
var (
	ErrNetwork       = errors.New("network request failed")
	ErrResponseParse = errors.New("unexpected compilation response")
)

// General domain errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
)
