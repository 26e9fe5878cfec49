package extract

import "strings"

// DefaultFields is the field list offered when the user has not
// provided one.
var DefaultFields = []string{
	"Invoice Number",
	"Customer Name",
	"Total Amount",
	"Due Date",
}

// ParseFields splits newline-separated user input into a field list.
// Each line is trimmed; blank lines are dropped. Duplicates and order
// are preserved so results line up with what the user typed.
func ParseFields(input string) []string {
	var fields []string
	for _, line := range strings.Split(input, "\n") {
		field := strings.TrimSpace(line)
		if field == "" {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}
