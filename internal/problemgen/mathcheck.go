package problemgen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ArithmeticCheck recomputes each problem locally and rejects any that
// break the worksheet constraints: operand range, operator set, arity,
// parentheses, non-negative subtraction and exact division at every step.
type ArithmeticCheck struct{}

func (v *ArithmeticCheck) Name() string { return "arithmetic" }

func (v *ArithmeticCheck) Validate(problem string, cfg Config) *ConstraintError {
	expr := strings.TrimSpace(problem)
	expr = strings.TrimSpace(strings.TrimSuffix(expr, "="))

	ev, err := evaluate(expr)
	if err != nil {
		return v.fail(err.Error())
	}

	if len(ev.ops) != cfg.NumOperations {
		return v.fail(fmt.Sprintf("has %d operations, want %d", len(ev.ops), cfg.NumOperations))
	}
	for _, op := range ev.ops {
		if !cfg.Operations.Has(op) {
			return v.fail(fmt.Sprintf("uses %s which is not selected", op))
		}
	}
	for _, n := range ev.numbers {
		if n < int64(cfg.Min) || n > int64(cfg.Max) {
			return v.fail(fmt.Sprintf("number %d is outside %d..%d", n, cfg.Min, cfg.Max))
		}
	}
	if ev.parens > 0 && !cfg.Parenthesized() {
		return v.fail("uses parentheses")
	}
	if ev.violation != "" {
		return v.fail(ev.violation)
	}
	return nil
}

func (v *ArithmeticCheck) fail(reason string) *ConstraintError {
	return &ConstraintError{Validator: v.Name(), Reason: reason}
}

// evaluation is what the checker learned from one expression.
type evaluation struct {
	value     int64
	numbers   []int64
	ops       []Operation
	parens    int
	violation string // first broken step, if any
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	num  int64
	op   Operation
}

func tokenize(s string) ([]token, error) {
	var toks []token
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			n, err := strconv.ParseInt(string(runes[i:j]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q", string(runes[i:j]))
			}
			toks = append(toks, token{kind: tokNumber, num: n})
			i = j
		case r == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		default:
			op, ok := ParseOperation(string(r))
			if !ok {
				return nil, fmt.Errorf("unexpected character %q", r)
			}
			toks = append(toks, token{kind: tokOp, op: op})
			i++
		}
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("no expression")
	}
	return toks, nil
}

// evaluate parses expr with the usual precedence (multiplication and
// division bind tighter, otherwise left to right) and records every
// intermediate step.
func evaluate(expr string) (*evaluation, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	p := &exprParser{toks: toks, ev: &evaluation{}}
	v, err := p.sum()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected trailing input")
	}
	p.ev.value = v
	return p.ev, nil
}

type exprParser struct {
	toks []token
	pos  int
	ev   *evaluation
}

func (p *exprParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) sum() (int64, error) {
	left, err := p.product()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.op != OpAdd && t.op != OpSubtract) {
			return left, nil
		}
		p.pos++
		right, err := p.product()
		if err != nil {
			return 0, err
		}
		left = p.apply(t.op, left, right)
	}
}

func (p *exprParser) product() (int64, error) {
	left, err := p.operand()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.op != OpMultiply && t.op != OpDivide) {
			return left, nil
		}
		p.pos++
		right, err := p.operand()
		if err != nil {
			return 0, err
		}
		left = p.apply(t.op, left, right)
	}
}

func (p *exprParser) operand() (int64, error) {
	t, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("expression ends early")
	}
	switch t.kind {
	case tokNumber:
		p.pos++
		p.ev.numbers = append(p.ev.numbers, t.num)
		return t.num, nil
	case tokLParen:
		p.pos++
		p.ev.parens++
		v, err := p.sum()
		if err != nil {
			return 0, err
		}
		if t, ok := p.peek(); !ok || t.kind != tokRParen {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	default:
		return 0, fmt.Errorf("expected a number")
	}
}

func (p *exprParser) apply(op Operation, a, b int64) int64 {
	p.ev.ops = append(p.ev.ops, op)
	switch op {
	case OpAdd:
		return a + b
	case OpSubtract:
		if a < b {
			p.violate(fmt.Sprintf("%d - %d is negative", a, b))
		}
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		if b == 0 {
			p.violate(fmt.Sprintf("%d / 0 divides by zero", a))
			return 0
		}
		if a%b != 0 {
			p.violate(fmt.Sprintf("%d / %d is not exact", a, b))
		}
		return a / b
	}
	return 0
}

func (p *exprParser) violate(reason string) {
	if p.ev.violation == "" {
		p.ev.violation = reason
	}
}
