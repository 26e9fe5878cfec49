package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildKeySchema compiles a JSON schema requiring exactly the requested
// field names as keys, all with string values.
func buildKeySchema(fields []string) (*jsonschema.Schema, error) {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f] = map[string]any{"type": "string"}
	}
	doc := map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             fields,
		"additionalProperties": false,
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("fields.json", strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("failed to add key schema: %w", err)
	}
	schema, err := compiler.Compile("fields.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile key schema: %w", err)
	}
	return schema, nil
}

// validateKeys checks a parsed reply against the exact requested key set.
func validateKeys(fields []string, values map[string]string) error {
	schema, err := buildKeySchema(fields)
	if err != nil {
		return &Error{Kind: ErrKindReply, Reason: "key schema unavailable", Err: err}
	}

	doc := make(map[string]any, len(values))
	for k, v := range values {
		doc[k] = v
	}
	if err := schema.Validate(doc); err != nil {
		return &Error{
			Kind:   ErrKindReply,
			Reason: "model reply keys do not match the requested fields",
			Err:    err,
		}
	}
	return nil
}
