package problemgen

import (
	"errors"
	"fmt"
)

// InvalidNumberError reports a form field that is not an integer.
type InvalidNumberError struct {
	Field string
	Value string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid number", e.Field, e.Value)
}

// NegativeOrZeroError reports a negative bound or a non-positive count.
type NegativeOrZeroError struct {
	Field string
	Value int
}

func (e *NegativeOrZeroError) Error() string {
	if e.Field == FieldCount {
		return fmt.Sprintf("%s must be positive, got %d", e.Field, e.Value)
	}
	return fmt.Sprintf("%s must not be negative, got %d", e.Field, e.Value)
}

// RangeOrderError reports min > max.
type RangeOrderError struct {
	Min int
	Max int
}

func (e *RangeOrderError) Error() string {
	return fmt.Sprintf("min %d is greater than max %d", e.Min, e.Max)
}

// NoOperationSelectedError reports an empty operator set.
type NoOperationSelectedError struct{}

func (e *NoOperationSelectedError) Error() string {
	return "no operation selected"
}

// ErrNoOperationSelected is the value ParseConfig returns for an empty
// operator set.
var ErrNoOperationSelected error = &NoOperationSelectedError{}

// CountLimitError rejects worksheets larger than MaxCount.
type CountLimitError struct {
	Count int
	Limit int
}

func (e *CountLimitError) Error() string {
	return fmt.Sprintf("count %d exceeds the limit of %d", e.Count, e.Limit)
}

// GenerationFailedError wraps a transport, service or empty-response
// failure of the generation call.
type GenerationFailedError struct {
	Err error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }

// MalformedResponseError reports a response that is not a list of
// strings, or that failed the arithmetic check.
type MalformedResponseError struct {
	Raw []byte
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ConstraintError describes a generated problem that breaks the
// worksheet constraints.
type ConstraintError struct {
	Validator string
	Index     int
	Problem   string
	Reason    string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("problem %d %q (%s): %s", e.Index+1, e.Problem, e.Validator, e.Reason)
}

// Kind classifies an error for user-facing messages.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidNumber
	KindNegativeOrZero
	KindRangeOrder
	KindNoOperationSelected
	KindCountLimit
	KindGenerationFailed
	KindMalformedResponse
	KindUnknown
)

var kindNames = [...]string{
	KindNone:                "none",
	KindInvalidNumber:       "invalid_number",
	KindNegativeOrZero:      "negative_or_zero",
	KindRangeOrder:          "range_order",
	KindNoOperationSelected: "no_operation_selected",
	KindCountLimit:          "count_limit",
	KindGenerationFailed:    "generation_failed",
	KindMalformedResponse:   "malformed_response",
	KindUnknown:             "unknown",
}

// String returns a snake_case name suitable for logs and API payloads.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindOf returns the kind of err.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		invalid   *InvalidNumberError
		negative  *NegativeOrZeroError
		order     *RangeOrderError
		noOp      *NoOperationSelectedError
		limit     *CountLimitError
		malformed *MalformedResponseError
		failed    *GenerationFailedError
	)
	switch {
	case errors.As(err, &invalid):
		return KindInvalidNumber
	case errors.As(err, &negative):
		return KindNegativeOrZero
	case errors.As(err, &order):
		return KindRangeOrder
	case errors.As(err, &noOp):
		return KindNoOperationSelected
	case errors.As(err, &limit):
		return KindCountLimit
	case errors.As(err, &malformed):
		return KindMalformedResponse
	case errors.As(err, &failed):
		return KindGenerationFailed
	}
	return KindUnknown
}

// IsValidation reports whether err came from ParseConfig.
func IsValidation(err error) bool {
	switch KindOf(err) {
	case KindInvalidNumber, KindNegativeOrZero, KindRangeOrder,
		KindNoOperationSelected, KindCountLimit:
		return true
	}
	return false
}
