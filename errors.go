package cellatlas

import (
	"errors"
	"fmt"
)

var (
	// ErrBuildFailed is wrapped by every error returned from an atlas build.
	ErrBuildFailed = errors.New("cellatlas: atlas build failed")

	// ErrUnknownFont is returned when a FontDescriptor names a family that
	// is not registered with the FontLibrary.
	ErrUnknownFont = errors.New("cellatlas: unknown font family")

	// ErrInvalidMetrics is returned for cell metrics that are not strictly positive.
	ErrInvalidMetrics = errors.New("cellatlas: invalid cell metrics")
)

// BuildError describes a failed atlas build.
type BuildError struct {
	Font    FontDescriptor
	Metrics CellMetrics
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s at %s: %v", ErrBuildFailed, e.Font, e.Metrics, e.Err)
}

func (e *BuildError) Unwrap() []error {
	return []error{ErrBuildFailed, e.Err}
}
