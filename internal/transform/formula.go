// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import "strings"

// ParseHyperlinkFormula extracts the target URL and optional friendly text
// from a HYPERLINK(target, friendly) formula. The argument list is scanned
// respecting quoted-string boundaries: commas and semicolons inside quotes
// are not separators. Surrounding quotes are stripped from each argument.
// Returns empty strings when the formula is not a HYPERLINK call or no
// argument is recoverable. Unbalanced quotes are parsed best-effort.
func ParseHyperlinkFormula(formula string) (url, friendly string) {
	s := strings.TrimSpace(formula)
	s = strings.TrimPrefix(s, "=")
	if !strings.HasPrefix(strings.ToUpper(s), "HYPERLINK(") {
		return "", ""
	}

	inside := s[strings.Index(s, "(")+1:]
	inside = strings.TrimSuffix(inside, ")")

	var parts []string
	var buf strings.Builder
	inQuote := false
	for _, ch := range inside {
		switch {
		case ch == '"':
			inQuote = !inQuote
			buf.WriteRune(ch)
		case !inQuote && (ch == ',' || ch == ';'):
			parts = append(parts, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteRune(ch)
		}
	}
	if buf.Len() > 0 {
		parts = append(parts, strings.TrimSpace(buf.String()))
	}

	if len(parts) > 0 {
		url = unquote(parts[0])
	}
	if len(parts) > 1 {
		friendly = unquote(parts[1])
	}
	return url, friendly
}

// unquote strips one pair of surrounding double quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
