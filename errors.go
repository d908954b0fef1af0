package client

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBaseURL      = errors.New("base url cannot be empty")
	ErrEmptyUUID         = errors.New("uuid cannot be empty")
	ErrNilResult         = errors.New("result cannot be nil")
	ErrNilWriter         = errors.New("writer cannot be nil")
	ErrNoDownloadURL     = errors.New("no url to download from provided")
	ErrUnsafeArchivePath = errors.New("archive entry escapes destination")

	// ErrTransport marks connection, DNS and timeout failures.
	ErrTransport = errors.New("transport error")
	// ErrProtocol marks unexpected statuses and malformed responses.
	ErrProtocol = errors.New("protocol error")
	// ErrConversionFailed is returned when the server reports state "error".
	ErrConversionFailed = errors.New("server error getting conversion status, see server logs for details")
	// ErrConversionTimeout is returned when polling exhausts the conversion timeout.
	ErrConversionTimeout = errors.New("conversion timed out")
)

// errTransport wraps a failed call with its operation.
func errTransport(operation Operation, err error) error {
	return fmt.Errorf("%s failed: %w: %w", operation, ErrTransport, err)
}

// errStatus formats an error with the HTTP status of a failed call.
func errStatus(operation Operation, statusCode int, status string) error {
	return fmt.Errorf("%s failed with status %d: %s: %w", operation, statusCode, status, ErrProtocol)
}

// errMalformed reports a response body that lacks what the operation needs.
func errMalformed(operation Operation, detail string) error {
	return fmt.Errorf("%s failed: %s: %w", operation, detail, ErrProtocol)
}

func errTimeout(seconds int) error {
	return fmt.Errorf("%w: file took longer than %d seconds to convert", ErrConversionTimeout, seconds)
}
