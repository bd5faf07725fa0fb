package problemgen

import (
	"fmt"
	"strings"
)

// Validator checks one generated problem against the worksheet config.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "format", "arithmetic".
	Name() string

	// Validate returns nil if the problem passes. The returned error's
	// Index and Problem are filled in by the caller.
	Validate(problem string, cfg Config) *ConstraintError
}

// FormatValidator checks that a problem ends with "=" and carries no
// answer.
type FormatValidator struct{}

func (v *FormatValidator) Name() string { return "format" }

func (v *FormatValidator) Validate(problem string, _ Config) *ConstraintError {
	trimmed := strings.TrimSpace(problem)
	switch {
	case trimmed == "":
		return v.fail("empty problem")
	case !strings.HasSuffix(trimmed, "="):
		return v.fail(`does not end with "= "`)
	case strings.Count(trimmed, "=") > 1:
		return v.fail(fmt.Sprintf("contains %d equals signs", strings.Count(trimmed, "=")))
	}
	return nil
}

func (v *FormatValidator) fail(reason string) *ConstraintError {
	return &ConstraintError{Validator: v.Name(), Reason: reason}
}

// runValidators applies validators to every problem in order and returns
// the first failure.
func runValidators(validators []Validator, problems []string, cfg Config) *ConstraintError {
	for i, p := range problems {
		for _, v := range validators {
			if cerr := v.Validate(p, cfg); cerr != nil {
				cerr.Index = i
				cerr.Problem = p
				if cerr.Validator == "" {
					cerr.Validator = v.Name()
				}
				return cerr
			}
		}
	}
	return nil
}
