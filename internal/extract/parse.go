package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NotFound is the sentinel value the model is instructed to use for
// fields it cannot locate in the document.
const NotFound = "N/A"

// stripCodeFences removes markdown code fences that models sometimes
// wrap around JSON output despite instructions not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Remove a language tag whether the fence is on its own line
		// ("```json\n{...}") or runs straight into the payload
		// ("```json{...}").
		if idx := strings.Index(s, "\n"); idx != -1 && !strings.ContainsAny(s[:idx], "{[") {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "json")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}

	return strings.TrimSpace(s)
}

// parseResponse parses a model reply into the requested fields, in
// request order. Non-string JSON values are stringified. Requested
// fields missing from the reply get the NotFound sentinel.
func parseResponse(reply string, fields []string) ([]FieldValue, map[string]string, error) {
	cleaned := stripCodeFences(reply)
	if cleaned == "" {
		return nil, nil, &Error{Kind: ErrKindEmpty, Reason: "model returned an empty reply"}
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, &Error{
			Kind:   ErrKindParse,
			Reason: "model reply is not a JSON object",
			Err:    err,
		}
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[k] = stringify(v)
	}

	ordered := make([]FieldValue, 0, len(fields))
	for _, field := range fields {
		value, ok := values[field]
		if !ok {
			value = NotFound
		}
		ordered = append(ordered, FieldValue{Name: field, Value: value})
	}

	return ordered, values, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return NotFound
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
