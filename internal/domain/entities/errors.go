package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrEmptyTranscript        = errors.New("transcript is required")
	ErrUnknownVariant         = errors.New("unknown result variant")
	ErrGeneratorNotConfigured = errors.New("generator not configured")
	// ErrGeneratorFailed marks a non-retryable generator call failure
	ErrGeneratorFailed = errors.New("generator call failed")
)

// TransientKind classifies retry-safe generator failures
type TransientKind string

const (
	KindRateLimited TransientKind = "rate_limited"
	KindTimeout     TransientKind = "timeout"
	KindUpstream    TransientKind = "upstream_error"
)

// TransientUpstreamError marks a generator failure that is safe to retry
type TransientUpstreamError struct {
	Kind TransientKind
	Err  error
}

func (e *TransientUpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transient upstream failure (%s)", e.Kind)
	}
	return fmt.Sprintf("transient upstream failure (%s): %v", e.Kind, e.Err)
}

func (e *TransientUpstreamError) Unwrap() error { return e.Err }

// IsTransient reports whether err is retry-safe
func IsTransient(err error) bool {
	var te *TransientUpstreamError
	return errors.As(err, &te)
}

// TransientKindOf returns the kind of a transient error, or "" for anything else
func TransientKindOf(err error) TransientKind {
	var te *TransientUpstreamError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

// ValidationError lists every constraint a generated document violates
type ValidationError struct {
	Variant    Variant
	Violations []string
	Raw        RawGeneratedOutput
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d validation error(s) for %s result:\n- %s",
		len(e.Violations), e.Variant, strings.Join(e.Violations, "\n- "))
}

// RepairExhaustedError is returned when the repaired document is still invalid
type RepairExhaustedError struct {
	Cause *ValidationError
}

func (e *RepairExhaustedError) Error() string {
	return fmt.Sprintf("output still invalid after repair: %v", e.Cause)
}

func (e *RepairExhaustedError) Unwrap() error { return e.Cause }
