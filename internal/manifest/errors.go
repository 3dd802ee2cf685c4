package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrWriterClosed indicates a write after Commit or Close
	ErrWriterClosed = errors.New("manifest writer is closed")

	// ErrNoSource indicates the generator has no file source
	ErrNoSource = errors.New("generator requires a file source")
)
