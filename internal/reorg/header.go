package reorg

import "strings"

// ExtractHeader collects the using directives that precede the first
// namespace declaration, one per line, joined with newlines. These are
// hoisted by emitters onto every generated unit so each file compiles on
// its own. Returns "" when the text has no namespace keyword or starts
// with one.
func ExtractHeader(text string) string {
	off := indexKeyword(text, nsKeyword, 0)
	if off <= 0 {
		return ""
	}

	var directives []string
	for _, line := range strings.Split(text[:off], "\n") {
		if d, ok := usingDirective(line); ok {
			directives = append(directives, d)
		}
	}
	return strings.Join(directives, "\n")
}

// usingDirective reports whether line is a complete using directive
// (`using <anything but semicolons>;` with optional surrounding
// whitespace) and returns its trimmed form.
func usingDirective(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(trimmed, "using")
	if !ok || rest == "" || !isSpace(rest[0]) {
		return "", false
	}
	semi := strings.IndexByte(rest, ';')
	if semi < 0 || semi != len(rest)-1 {
		return "", false
	}
	if strings.TrimSpace(rest[:semi]) == "" {
		return "", false
	}
	return trimmed, true
}
