package field

import (
	"strings"
	"unicode"
)

// VariableName turns a label or key into a camelCase variable:
// "first_name" and "First Name" both become firstName. A leading digit gets
// an "f" prefix and an input without letters or digits yields "field".
func VariableName(s string) string {
	var sb strings.Builder
	upper := false
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = sb.Len() > 0
			continue
		}
		if sb.Len() == 0 {
			if unicode.IsDigit(r) {
				sb.WriteString("f")
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return "field"
	}
	return sb.String()
}
