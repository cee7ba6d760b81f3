package reorg

import "strings"

// TokenKind distinguishes the two namespace declaration syntaxes.
type TokenKind int

const (
	// KindBlock is `namespace X { ... }` — extent delimited by braces.
	KindBlock TokenKind = iota
	// KindFileScoped is `namespace X;` — extent runs to the next
	// declaration or end of text.
	KindFileScoped
)

// String returns the declaration form name for diagnostics.
func (k TokenKind) String() string {
	if k == KindFileScoped {
		return "file-scoped"
	}
	return "block"
}

// NamespaceToken is one recognized namespace declaration.
type NamespaceToken struct {
	// Offset is the position of the `namespace` keyword in the text.
	Offset int
	// Name is the dotted identifier being declared.
	Name string
	// Kind determines how the declaration's extent is computed.
	Kind TokenKind
}

const nsKeyword = "namespace"

// Tokenize scans text for namespace declarations in source order. Both the
// block and file-scoped forms are recognized. Nested declarations inside a
// block are tokenized too — Partition decides what to do with them. Text
// with no recognizable declarations yields nil.
func Tokenize(text string) []NamespaceToken {
	var tokens []NamespaceToken
	pos := 0
	for {
		off := indexKeyword(text, nsKeyword, pos)
		if off < 0 {
			return tokens
		}
		// Resume after the keyword regardless of whether a declaration
		// parses — a stray `namespace` word must not stall the scan.
		pos = off + len(nsKeyword)

		p := skipSpace(text, pos)
		name, p := scanDottedIdent(text, p)
		if name == "" {
			continue
		}
		p = skipSpace(text, p)
		if p >= len(text) {
			continue
		}
		switch text[p] {
		case ';':
			tokens = append(tokens, NamespaceToken{Offset: off, Name: name, Kind: KindFileScoped})
			pos = p + 1
		case '{':
			tokens = append(tokens, NamespaceToken{Offset: off, Name: name, Kind: KindBlock})
			pos = p + 1
		}
	}
}

// indexKeyword finds the next standalone occurrence of word at or after
// from: the surrounding characters must not be identifier characters.
func indexKeyword(text, word string, from int) int {
	for {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return -1
		}
		off := from + i
		before := off == 0 || !isIdentChar(text[off-1])
		afterIdx := off + len(word)
		after := afterIdx >= len(text) || !isIdentChar(text[afterIdx])
		if before && after {
			return off
		}
		from = off + len(word)
	}
}

// scanDottedIdent reads a dotted identifier (`Foo.Bar.Baz`) starting at
// pos. Segments are letters, digits and underscores; the first character
// of the whole identifier must not be a digit, and no segment may be
// empty. Returns "" and the original position when nothing valid starts
// at pos.
func scanDottedIdent(text string, pos int) (string, int) {
	end := pos
	for end < len(text) && (isIdentChar(text[end]) || text[end] == '.') {
		end++
	}
	ident := text[pos:end]
	if ident == "" {
		return "", pos
	}
	if c := ident[0]; c >= '0' && c <= '9' {
		return "", pos
	}
	if ident[0] == '.' || ident[len(ident)-1] == '.' || strings.Contains(ident, "..") {
		return "", pos
	}
	return ident, end
}
