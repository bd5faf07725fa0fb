package problemgen

import "github.com/abhisek/mathsheet/internal/llm"

// ProblemListSchema defines the JSON schema for worksheet responses.
var ProblemListSchema = &llm.Schema{
	Name:        "math-problem-list",
	Description: "A list of arithmetic practice problems without answers",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":        "string",
			"description": "A single math problem as a string, ending with ' = '.",
		},
	},
}
