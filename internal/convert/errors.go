// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency reports that a required renderer or external
	// program is not available.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrConversion reports that a library failed or panicked while
	// processing the document.
	ErrConversion = errors.New("conversion failed")

	// ErrUnsupportedFormat reports an input, output, or image format that no
	// routine handles.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// FormatError names the rejected extension. It matches ErrUnsupportedFormat.
type FormatError struct {
	// Kind is "input", "output", "image", or "conversion".
	Kind string
	Ext  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Unsupported %s format: %s", e.Kind, e.Ext)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *FormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// failed wraps err as a conversion failure unless it already carries one of
// the package sentinels.
func failed(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConversion) || errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrMissingDependency) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConversion, err)
}

// recoverTo turns a panic escaping a library call into a conversion error.
// It must be deferred directly.
func recoverTo(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: library panic: %v", ErrConversion, r)
	}
}
