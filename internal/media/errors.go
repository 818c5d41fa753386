package media

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks bad input the uploader can correct (unsupported
	// type, oversized payload).
	ErrValidation = errors.New("validation error")
	// ErrCodec marks a failed external transform; retryable by re-upload.
	ErrCodec = errors.New("codec failure")
	// ErrIO marks disk or permission problems; operator-facing.
	ErrIO = errors.New("io failure")
	// ErrConflict marks a target folder that already exists. Never resolved
	// by overwriting; requires manual resolution.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a missing record or folder.
	ErrNotFound = errors.New("not found")
	// ErrBusy marks an operation rejected because another mutator holds the
	// per-owner lock.
	ErrBusy = errors.New("owner busy")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// UserFacing reports whether the error may be shown verbatim to an uploader.
// IO, conflict, and partial-failure detail stay operator-only.
func UserFacing(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrCodec)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "engine failure"
	}
	return strings.Join(parts, ": ")
}
