package llm

import "encoding/json"

// envelopeKey names the single property used to carry a non-object schema
// through providers whose structured output requires an object root.
const envelopeKey = "items"

// objectRoot returns def as-is when it already describes an object.
// Otherwise it wraps def as the only, required property of an object and
// reports true.
func objectRoot(def map[string]any) (map[string]any, bool) {
	if t, _ := def["type"].(string); t == "object" {
		return def, false
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			envelopeKey: def,
		},
		"required":             []any{envelopeKey},
		"additionalProperties": false,
	}, true
}

// unwrapEnvelope extracts the enveloped value from content. Content that is
// not a one-key envelope is returned unchanged so the caller's shape check
// sees exactly what the model produced.
func unwrapEnvelope(content json.RawMessage) json.RawMessage {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(content, &env); err != nil {
		return content
	}
	inner, ok := env[envelopeKey]
	if !ok || len(env) != 1 {
		return content
	}
	return inner
}
