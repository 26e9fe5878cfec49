package extract

import "testing"

func TestParseFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "basic list",
			input: "Invoice Number\nCustomer Name",
			want:  []string{"Invoice Number", "Customer Name"},
		},
		{
			name:  "trims and drops blanks",
			input: "  Total Amount  \n\n\t\nDue Date\n",
			want:  []string{"Total Amount", "Due Date"},
		},
		{
			name:  "preserves duplicates and order",
			input: "Total\nTotal\nDate",
			want:  []string{"Total", "Total", "Date"},
		},
		{
			name:  "empty input",
			input: "   \n \n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a": "b"}`, `{"a": "b"}`},
		{"json fence", "```json\n{\"a\": \"b\"}\n```", `{"a": "b"}`},
		{"bare fence", "```\n{\"a\": \"b\"}\n```", `{"a": "b"}`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n  ", "{}"},
		{"single-line json fence", "```json{\"a\": \"b\"}```", `{"a": "b"}`},
		{"single-line bare fence", "```{\"a\": \"b\"}```", `{"a": "b"}`},
		{"fence tag runs into multiline payload", "```json{\"a\":\n\"b\"}\n```", "{\"a\":\n\"b\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringifyNonStringValues(t *testing.T) {
	fields, _, err := parseResponse(`{"Count": 42, "Ratio": 0.5, "Missing": null, "Flag": true}`,
		[]string{"Count", "Ratio", "Missing", "Flag"})
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}

	want := map[string]string{
		"Count":   "42",
		"Ratio":   "0.5",
		"Missing": NotFound,
		"Flag":    "true",
	}
	for _, fv := range fields {
		if fv.Value != want[fv.Name] {
			t.Errorf("%s: got %q, want %q", fv.Name, fv.Value, want[fv.Name])
		}
	}
}
