package extract

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed prompt.tmpl
var promptTemplate string

var promptTmpl = template.Must(template.New("prompt").Parse(promptTemplate))

// BuildPrompt renders the extraction prompt for the given field list.
// Field names appear in the prompt verbatim.
func BuildPrompt(fields []string) (string, error) {
	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, struct{ Fields []string }{Fields: fields}); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}
