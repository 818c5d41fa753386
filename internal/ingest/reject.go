package ingest

import (
	"fmt"

	"mediastore/internal/media"
)

// RejectionReason classifies why an upload was turned away before any
// filesystem write.
type RejectionReason string

const (
	ReasonUnsupportedType RejectionReason = "unsupported-type"
	ReasonTooLarge        RejectionReason = "too-large"
)

// Rejection is returned when validation turns an upload away. It carries a
// machine-readable reason alongside the human-readable detail and matches
// the validation sentinel, so it is safe to surface to the uploader.
type Rejection struct {
	Reason RejectionReason
	Detail string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("upload rejected (%s): %s", r.Reason, r.Detail)
}

// Unwrap ties rejections into the validation error class.
func (r *Rejection) Unwrap() error {
	return media.ErrValidation
}

func reject(reason RejectionReason, format string, args ...any) error {
	return &Rejection{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
