package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedName marks filenames that cannot be decoded: too few tokens or
	// an unknown telescope combination.
	ErrMalformedName = errors.New("malformed name")
	// ErrMissingContext marks caller contract violations where the record has no
	// plane or artifact for the decoded name.
	ErrMissingContext = errors.New("missing context")
	// ErrMalformedComment marks recognised header comments with unparsable payloads.
	ErrMalformedComment = errors.New("malformed comment")
	ErrValidation       = errors.New("validation error")
	ErrConfiguration    = errors.New("configuration error")
	ErrNotFound         = errors.New("not found")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ErrorKind returns the ledger classification for err. Unknown errors are "error".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedName):
		return "malformed_name"
	case errors.Is(err, ErrMissingContext):
		return "missing_context"
	case errors.Is(err, ErrMalformedComment):
		return "malformed_comment"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "processing failure"
	}
	return strings.Join(parts, ": ")
}
