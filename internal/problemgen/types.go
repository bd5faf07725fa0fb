package problemgen

import "strings"

// Operation is one of the four arithmetic operators a worksheet may use.
type Operation int

const (
	OpAdd Operation = iota
	OpSubtract
	OpMultiply
	OpDivide
)

// AllOperations lists the operations in display order.
var AllOperations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

// Symbol returns the ASCII operator symbol used in generated problems.
func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

// String returns the lowercase key used in settings files and flags.
func (o Operation) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "unknown"
	}
}

// noun is the English name used in prompt text.
func (o Operation) noun() string {
	switch o {
	case OpAdd:
		return "addition"
	case OpSubtract:
		return "subtraction"
	case OpMultiply:
		return "multiplication"
	case OpDivide:
		return "division"
	default:
		return "unknown"
	}
}

// ParseOperation maps a key ("add", "+", "sub", ...) to an Operation.
func ParseOperation(s string) (Operation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "addition", "+":
		return OpAdd, true
	case "subtract", "sub", "subtraction", "-":
		return OpSubtract, true
	case "multiply", "mul", "multiplication", "*", "x", "×":
		return OpMultiply, true
	case "divide", "div", "division", "/", "÷", ":":
		return OpDivide, true
	}
	return 0, false
}

// Operations is the set of enabled operators.
type Operations struct {
	Add      bool
	Subtract bool
	Multiply bool
	Divide   bool
}

// Has reports whether op is enabled.
func (o Operations) Has(op Operation) bool {
	switch op {
	case OpAdd:
		return o.Add
	case OpSubtract:
		return o.Subtract
	case OpMultiply:
		return o.Multiply
	case OpDivide:
		return o.Divide
	}
	return false
}

// Set enables or disables op and returns the updated set.
func (o Operations) Set(op Operation, on bool) Operations {
	switch op {
	case OpAdd:
		o.Add = on
	case OpSubtract:
		o.Subtract = on
	case OpMultiply:
		o.Multiply = on
	case OpDivide:
		o.Divide = on
	}
	return o
}

// Any reports whether at least one operation is enabled.
func (o Operations) Any() bool {
	return o.Add || o.Subtract || o.Multiply || o.Divide
}

// Selected returns the enabled operations in display order.
func (o Operations) Selected() []Operation {
	var ops []Operation
	for _, op := range AllOperations {
		if o.Has(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

// Keys returns the settings keys of the enabled operations.
func (o Operations) Keys() []string {
	sel := o.Selected()
	keys := make([]string, len(sel))
	for i, op := range sel {
		keys[i] = op.String()
	}
	return keys
}

// OperationsFromKeys builds a set from settings keys. Unknown keys are
// returned in the second value.
func OperationsFromKeys(keys []string) (Operations, []string) {
	var ops Operations
	var unknown []string
	for _, k := range keys {
		op, ok := ParseOperation(k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		ops = ops.Set(op, true)
	}
	return ops, unknown
}

// FormInput is the raw worksheet form as the user typed it.
type FormInput struct {
	Min            string
	Max            string
	Count          string
	Operations     Operations
	UseParentheses bool
	NumOperations  int
}

// Config is a validated worksheet request.
type Config struct {
	Min            int
	Max            int
	Count          int
	Operations     Operations
	UseParentheses bool
	NumOperations  int
}

// Parenthesized reports whether problems may group an operation in
// parentheses. Only two-operation problems can.
func (c Config) Parenthesized() bool {
	return c.NumOperations == 2 && c.UseParentheses
}
