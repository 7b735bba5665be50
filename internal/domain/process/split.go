package process

import (
	"fmt"
	"strings"
	"unicode"
)

// SplitArgs splits a user-supplied flag string on whitespace. Single or
// double quotes group a segment and are dropped; quoted and unquoted text
// that touch form one field. Backslashes and $ are literal.
func SplitArgs(raw string) ([]string, error) {
	var (
		fields  []string
		field   strings.Builder
		inField bool
		quote   rune
	)

	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			field.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inField = true
		case unicode.IsSpace(r):
			if inField {
				fields = append(fields, field.String())
				field.Reset()
				inField = false
			}
		default:
			field.WriteRune(r)
			inField = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("invalid argument string %q: unterminated %c quote", raw, quote)
	}
	if inField {
		fields = append(fields, field.String())
	}
	return fields, nil
}
