package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathsheet/internal/llm"
)

const systemPrompt = `You are a teacher preparing printable arithmetic worksheets for primary-school children.

Rules:
- Reply with a JSON array of strings and nothing else.
- Each string is one problem written in plain ASCII with single spaces around operators.
- Never include the answer. The student writes it on the worksheet.
- Follow every numbered constraint in the request exactly.`

// PromptOptions tunes prompt wording that is not part of the worksheet
// config.
type PromptOptions struct {
	GradeLevel int
}

// Prompt is the complete instruction payload for one generation call.
type Prompt struct {
	System string
	User   string
	Schema *llm.Schema
}

// BuildPrompt renders cfg into the instruction payload. The output depends
// only on its inputs.
func BuildPrompt(cfg Config, opts PromptOptions) Prompt {
	return Prompt{
		System: systemPrompt,
		User:   buildUserMessage(cfg, opts),
		Schema: ProblemListSchema,
	}
}

func buildUserMessage(cfg Config, opts PromptOptions) string {
	grade := opts.GradeLevel
	if grade <= 0 {
		grade = 3
	}
	ops := cfg.Operations.Selected()

	var rules []string
	rules = append(rules, fmt.Sprintf("Each problem must contain exactly %d %s.",
		cfg.NumOperations, plural(cfg.NumOperations, "operation", "operations")))
	rules = append(rules, fmt.Sprintf("Every number that appears in a problem must be a whole number between %d and %d inclusive.",
		cfg.Min, cfg.Max))
	if cfg.NumOperations == 2 {
		rules = append(rules, fmt.Sprintf("Use only these operators, choosing each of the two independently: %s.", operatorList(ops)))
	} else {
		rules = append(rules, fmt.Sprintf("Use only these operators: %s.", operatorList(ops)))
	}

	order := ""
	if cfg.NumOperations == 2 {
		order = " at every step, using the usual order of operations"
		if cfg.Parenthesized() {
			order += " with any parenthesized part worked first"
		}
	}
	if cfg.Operations.Subtract {
		rules = append(rules, fmt.Sprintf("No result may be negative: in every a - b, a must be greater than or equal to b%s.", order))
	}
	if cfg.Operations.Divide {
		rules = append(rules, fmt.Sprintf("Every division must come out exact: in every a / b, b must not be 0 and a must be a multiple of b%s.", order))
	}
	if cfg.Parenthesized() {
		rules = append(rules, "One of the two operations may be grouped in parentheses, for example (a op b) op c. The rules above still apply to every intermediate result.")
	}
	rules = append(rules, fmt.Sprintf("Return exactly %d %s.", cfg.Count, plural(cfg.Count, "problem", "problems")))
	rules = append(rules, `Every problem must end with "= " and must not contain the answer.`)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a list of %d unique math problems suitable for a %s-grade student.\n",
		cfg.Count, ordinal(grade))
	b.WriteString("\nConstraints:\n")
	for i, r := range rules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	examples := exampleLines(cfg)
	b.WriteString("\nFormat examples (the numbers only show the layout):\n")
	quoted := make([]string, len(examples))
	for i, e := range examples {
		quoted[i] = fmt.Sprintf("%q", e)
	}
	fmt.Fprintf(&b, "[%s]", strings.Join(quoted, ", "))

	return b.String()
}

func operatorList(ops []Operation) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = fmt.Sprintf("%s (%s)", op.noun(), op.Symbol())
	}
	return strings.Join(parts, ", ")
}

// Single-operation examples, one per operator.
var singleExamples = map[Operation]string{
	OpAdd:      "5 + 8 = ",
	OpSubtract: "12 - 4 = ",
	OpMultiply: "6 * 3 = ",
	OpDivide:   "15 / 5 = ",
}

type opPair struct{ first, second Operation }

// Two-operation examples. Each one satisfies the subtraction and division
// rules under the usual order of operations.
var pairExamples = map[opPair]string{
	{OpAdd, OpAdd}:           "5 + 8 + 3 = ",
	{OpAdd, OpSubtract}:      "5 + 8 - 3 = ",
	{OpAdd, OpMultiply}:      "4 + 2 * 3 = ",
	{OpAdd, OpDivide}:        "7 + 8 / 2 = ",
	{OpSubtract, OpAdd}:      "12 - 4 + 2 = ",
	{OpSubtract, OpSubtract}: "15 - 4 - 6 = ",
	{OpSubtract, OpMultiply}: "20 - 3 * 4 = ",
	{OpSubtract, OpDivide}:   "9 - 8 / 4 = ",
	{OpMultiply, OpAdd}:      "6 * 3 + 5 = ",
	{OpMultiply, OpSubtract}: "6 * 3 - 5 = ",
	{OpMultiply, OpMultiply}: "2 * 3 * 4 = ",
	{OpMultiply, OpDivide}:   "6 * 4 / 3 = ",
	{OpDivide, OpAdd}:        "12 / 4 + 5 = ",
	{OpDivide, OpSubtract}:   "12 / 4 - 2 = ",
	{OpDivide, OpMultiply}:   "12 / 4 * 3 = ",
	{OpDivide, OpDivide}:     "24 / 4 / 2 = ",
}

// Parenthesized forms, grouping the first operation.
var parenExamples = map[opPair]string{
	{OpAdd, OpAdd}:           "(5 + 8) + 3 = ",
	{OpAdd, OpSubtract}:      "(5 + 8) - 3 = ",
	{OpAdd, OpMultiply}:      "(4 + 2) * 3 = ",
	{OpAdd, OpDivide}:        "(7 + 9) / 4 = ",
	{OpSubtract, OpAdd}:      "(12 - 4) + 2 = ",
	{OpSubtract, OpSubtract}: "(15 - 4) - 6 = ",
	{OpSubtract, OpMultiply}: "(9 - 5) * 3 = ",
	{OpSubtract, OpDivide}:   "(14 - 2) / 4 = ",
	{OpMultiply, OpAdd}:      "(6 * 3) + 5 = ",
	{OpMultiply, OpSubtract}: "(6 * 3) - 5 = ",
	{OpMultiply, OpMultiply}: "(2 * 3) * 4 = ",
	{OpMultiply, OpDivide}:   "(6 * 4) / 3 = ",
	{OpDivide, OpAdd}:        "(12 / 4) + 5 = ",
	{OpDivide, OpSubtract}:   "(12 / 4) - 2 = ",
	{OpDivide, OpMultiply}:   "(12 / 4) * 3 = ",
	{OpDivide, OpDivide}:     "(24 / 4) / 2 = ",
}

// exampleLines picks up to three examples that use only the selected
// operators. With parentheses on, the last example is parenthesized.
func exampleLines(cfg Config) []string {
	ops := cfg.Operations.Selected()
	if len(ops) == 0 {
		return nil
	}
	if cfg.NumOperations != 2 {
		var out []string
		for _, op := range ops {
			out = append(out, singleExamples[op])
			if len(out) == 3 {
				break
			}
		}
		return out
	}

	var pairs []opPair
	for _, a := range ops {
		for _, b := range ops {
			pairs = append(pairs, opPair{a, b})
		}
	}
	var picked []opPair
	for _, i := range []int{0, len(pairs) / 2, len(pairs) - 1} {
		p := pairs[i]
		dup := false
		for _, q := range picked {
			if q == p {
				dup = true
				break
			}
		}
		if !dup {
			picked = append(picked, p)
		}
	}

	out := make([]string, len(picked))
	for i, p := range picked {
		out[i] = pairExamples[p]
	}
	if cfg.Parenthesized() {
		last := picked[len(picked)-1]
		if len(picked) == 1 {
			out = append(out, parenExamples[last])
		} else {
			out[len(out)-1] = parenExamples[last]
		}
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
