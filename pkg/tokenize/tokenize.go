// Package tokenize splits command lines into atomic tokens and joins them
// back for persistence.
//
// Quoted segments (single or double) are atomic: interior whitespace is kept
// and the quotes are stripped. Adjacent quoted and unquoted segments without
// whitespace between them form one token, so a token containing both quote
// kinds survives a Join/Split round trip.
package tokenize

import (
	"strings"
	"unicode"
)

// Split breaks a command line into tokens on unquoted whitespace.
// An unterminated quote extends to the end of the line. A bare pair of
// quotes yields an empty token.
func Split(line string) []string {
	var tokens []string
	var cur strings.Builder
	var quote rune
	active := false

	flush := func() {
		if active {
			tokens = append(tokens, cur.String())
			cur.Reset()
			active = false
		}
	}

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			active = true
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
			active = true
		}
	}
	flush()

	return tokens
}

// Join renders tokens as a single line such that Split returns the original
// tokens unchanged.
func Join(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, token := range tokens {
		quoted[i] = Quote(token)
	}
	return strings.Join(quoted, " ")
}

// Quote wraps a single token so Split parses it back verbatim. Plain tokens
// pass through untouched.
func Quote(token string) string {
	switch {
	case token == "":
		return `""`
	case !strings.ContainsAny(token, " \t\r\n\"'"):
		return token
	case !strings.Contains(token, `"`):
		return `"` + token + `"`
	case !strings.Contains(token, "'"):
		return "'" + token + "'"
	}

	// Both quote kinds present: emit double-quoted runs with each interior
	// double quote spliced in as a single-quoted segment.
	parts := strings.Split(token, `"`)
	for i, part := range parts {
		parts[i] = `"` + part + `"`
	}
	return strings.Join(parts, `'"'`)
}
