package problemgen

import (
	"errors"
	"testing"
)

func validForm() FormInput {
	return FormInput{
		Min:           "1",
		Max:           "20",
		Count:         "4",
		Operations:    Operations{Add: true},
		NumOperations: 1,
	}
}

func TestParseConfig_Valid(t *testing.T) {
	cfg, err := ParseConfig(validForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{Min: 1, Max: 20, Count: 4, Operations: Operations{Add: true}, NumOperations: 1}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestParseConfig_TrimsSpaces(t *testing.T) {
	in := validForm()
	in.Min, in.Max, in.Count = " 3 ", "\t9", "5\n"
	cfg, err := ParseConfig(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Min != 3 || cfg.Max != 9 || cfg.Count != 5 {
		t.Errorf("got %+v", cfg)
	}
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*FormInput)
		field string
	}{
		{"min", func(f *FormInput) { f.Min = "abc" }, FieldMin},
		{"max empty", func(f *FormInput) { f.Max = "" }, FieldMax},
		{"count decimal", func(f *FormInput) { f.Count = "2.5" }, FieldCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validForm()
			tt.edit(&in)
			_, err := ParseConfig(in)
			var target *InvalidNumberError
			if !errors.As(err, &target) {
				t.Fatalf("expected InvalidNumberError, got %v", err)
			}
			if target.Field != tt.field {
				t.Errorf("field = %q, want %q", target.Field, tt.field)
			}
		})
	}
}

func TestParseConfig_NegativeOrZero(t *testing.T) {
	tests := []struct {
		name string
		edit func(*FormInput)
	}{
		{"negative min", func(f *FormInput) { f.Min = "-1" }},
		{"negative max", func(f *FormInput) { f.Min = "0"; f.Max = "-2" }},
		{"zero count", func(f *FormInput) { f.Count = "0" }},
		{"negative count", func(f *FormInput) { f.Count = "-3" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validForm()
			tt.edit(&in)
			_, err := ParseConfig(in)
			var target *NegativeOrZeroError
			if !errors.As(err, &target) {
				t.Fatalf("expected NegativeOrZeroError, got %v", err)
			}
		})
	}
}

func TestParseConfig_ZeroMinAllowed(t *testing.T) {
	in := validForm()
	in.Min = "0"
	if _, err := ParseConfig(in); err != nil {
		t.Errorf("min 0 should be allowed, got %v", err)
	}
}

func TestParseConfig_RangeOrder(t *testing.T) {
	for _, pair := range [][2]string{{"21", "20"}, {"100", "1"}, {"2", "1"}} {
		in := validForm()
		in.Min, in.Max = pair[0], pair[1]
		_, err := ParseConfig(in)
		var target *RangeOrderError
		if !errors.As(err, &target) {
			t.Errorf("min=%s max=%s: expected RangeOrderError, got %v", pair[0], pair[1], err)
		}
	}
}

func TestParseConfig_NoOperation(t *testing.T) {
	in := validForm()
	in.Operations = Operations{}
	_, err := ParseConfig(in)
	if !errors.Is(err, ErrNoOperationSelected) {
		t.Fatalf("expected ErrNoOperationSelected, got %v", err)
	}
	var target *NoOperationSelectedError
	if !errors.As(err, &target) {
		t.Error("expected errors.As to match NoOperationSelectedError")
	}
}

func TestParseConfig_CheckOrder(t *testing.T) {
	// Range order is reported before the missing operation set.
	in := validForm()
	in.Min, in.Max = "10", "1"
	in.Operations = Operations{}
	_, err := ParseConfig(in)
	if KindOf(err) != KindRangeOrder {
		t.Errorf("got kind %v, want RangeOrder", KindOf(err))
	}

	// A bad number is reported before a negative one.
	in = validForm()
	in.Min, in.Count = "-1", "x"
	_, err = ParseConfig(in)
	if KindOf(err) != KindInvalidNumber {
		t.Errorf("got kind %v, want InvalidNumber", KindOf(err))
	}
}

func TestParseConfig_ClampsNumOperations(t *testing.T) {
	for _, n := range []int{0, 3, -1} {
		in := validForm()
		in.NumOperations = n
		cfg, err := ParseConfig(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.NumOperations != 1 {
			t.Errorf("NumOperations %d clamped to %d, want 1", n, cfg.NumOperations)
		}
	}
}

func TestParseConfig_CountLimit(t *testing.T) {
	in := validForm()
	in.Count = "201"
	_, err := ParseConfig(in)
	var target *CountLimitError
	if !errors.As(err, &target) {
		t.Fatalf("expected CountLimitError, got %v", err)
	}
	if target.Limit != MaxCount {
		t.Errorf("limit = %d, want %d", target.Limit, MaxCount)
	}

	in.Count = "200"
	if _, err := ParseConfig(in); err != nil {
		t.Errorf("count at the limit should pass, got %v", err)
	}
}

func TestParseConfig_KeepsParentheses(t *testing.T) {
	in := validForm()
	in.UseParentheses = true
	cfg, err := ParseConfig(in)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.UseParentheses {
		t.Error("UseParentheses should be kept as entered")
	}
	if cfg.Parenthesized() {
		t.Error("single-operation config must not be parenthesized")
	}
}

func TestFormFromConfig_RoundTrip(t *testing.T) {
	cfg := Config{Min: 2, Max: 50, Count: 12, Operations: Operations{Multiply: true, Divide: true}, NumOperations: 2, UseParentheses: true}
	got, err := ParseConfig(FormFromConfig(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(&RangeOrderError{Min: 2, Max: 1}) {
		t.Error("RangeOrderError should be a validation error")
	}
	if IsValidation(&GenerationFailedError{Err: errors.New("boom")}) {
		t.Error("GenerationFailedError is not a validation error")
	}
	if KindOf(nil) != KindNone {
		t.Error("nil should have KindNone")
	}
	if KindOf(errors.New("other")) != KindUnknown {
		t.Error("plain error should have KindUnknown")
	}
}

func TestOperationsFromKeys(t *testing.T) {
	ops, unknown := OperationsFromKeys([]string{"add", "DIV", "+", "modulo"})
	if !ops.Add || !ops.Divide || ops.Subtract || ops.Multiply {
		t.Errorf("got %+v", ops)
	}
	if len(unknown) != 1 || unknown[0] != "modulo" {
		t.Errorf("unknown = %v", unknown)
	}
	keys := ops.Keys()
	if len(keys) != 2 || keys[0] != "add" || keys[1] != "divide" {
		t.Errorf("keys = %v", keys)
	}
}
