package problemgen

import (
	"strconv"
	"strings"
	"time"
)

// Form field names used in validation errors.
const (
	FieldMin   = "min"
	FieldMax   = "max"
	FieldCount = "count"
)

// MaxCount is the largest worksheet ParseConfig accepts.
const MaxCount = 200

// ParseConfig validates the raw form. Checks run in a fixed order and the
// first failure is returned.
func ParseConfig(in FormInput) (Config, error) {
	minVal, err := parseField(FieldMin, in.Min)
	if err != nil {
		return Config{}, err
	}
	maxVal, err := parseField(FieldMax, in.Max)
	if err != nil {
		return Config{}, err
	}
	count, err := parseField(FieldCount, in.Count)
	if err != nil {
		return Config{}, err
	}

	switch {
	case minVal < 0:
		return Config{}, &NegativeOrZeroError{Field: FieldMin, Value: minVal}
	case maxVal < 0:
		return Config{}, &NegativeOrZeroError{Field: FieldMax, Value: maxVal}
	case count <= 0:
		return Config{}, &NegativeOrZeroError{Field: FieldCount, Value: count}
	}

	if minVal > maxVal {
		return Config{}, &RangeOrderError{Min: minVal, Max: maxVal}
	}
	if !in.Operations.Any() {
		return Config{}, ErrNoOperationSelected
	}

	numOps := in.NumOperations
	if numOps != 1 && numOps != 2 {
		numOps = 1
	}

	if count > MaxCount {
		return Config{}, &CountLimitError{Count: count, Limit: MaxCount}
	}

	return Config{
		Min:            minVal,
		Max:            maxVal,
		Count:          count,
		Operations:     in.Operations,
		UseParentheses: in.UseParentheses,
		NumOperations:  numOps,
	}, nil
}

func parseField(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InvalidNumberError{Field: field, Value: raw}
	}
	return v, nil
}

// FormFromConfig renders cfg back into form fields.
func FormFromConfig(cfg Config) FormInput {
	return FormInput{
		Min:            strconv.Itoa(cfg.Min),
		Max:            strconv.Itoa(cfg.Max),
		Count:          strconv.Itoa(cfg.Count),
		Operations:     cfg.Operations,
		UseParentheses: cfg.UseParentheses,
		NumOperations:  cfg.NumOperations,
	}
}

// DefaultForm is the form shown on first launch: 20 problems of addition
// and subtraction over 1..100.
func DefaultForm() FormInput {
	return FormInput{
		Min:           "1",
		Max:           "100",
		Count:         "20",
		Operations:    Operations{Add: true, Subtract: true},
		NumOperations: 1,
	}
}

// Options controls the behavior of the LLMGenerator.
type Options struct {
	// Validators run on every generated problem, in order. The first
	// failure rejects the whole response. Empty means the response is
	// trusted as returned.
	Validators []Validator

	// MaxTokens caps the response token budget. The budget actually
	// requested scales with the problem count.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// GradeLevel is the school grade the problems should suit.
	GradeLevel int

	// Timeout bounds the generation call. Zero means no extra deadline.
	Timeout time.Duration
}

// DefaultOptions returns Options that trust the model's arithmetic.
func DefaultOptions() Options {
	return Options{
		MaxTokens:   16384,
		Temperature: 0.8,
		GradeLevel:  3,
		Timeout:     60 * time.Second,
	}
}

// StrictValidators is the validator chain enabled by strict checking.
func StrictValidators() []Validator {
	return []Validator{
		&FormatValidator{},
		&ArithmeticCheck{},
	}
}
