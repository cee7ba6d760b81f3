package reorg

import "strings"

// typeModifiers are the keywords that may prefix a type declaration, in
// any combination and order.
var typeModifiers = map[string]bool{
	"public":    true,
	"internal":  true,
	"protected": true,
	"private":   true,
	"sealed":    true,
	"abstract":  true,
	"static":    true,
	"partial":   true,
	"readonly":  true,
	"ref":       true,
	"unsafe":    true,
	"new":       true,
}

// typeKinds are the keywords that introduce a top-level type.
var typeKinds = map[string]bool{
	"class":     true,
	"struct":    true,
	"interface": true,
	"enum":      true,
	"record":    true,
}

// SplitTypes slices one namespace's member text into top-level type
// declarations, mapping type name to the full declaration chunk (modifiers
// through closing brace or terminating semicolon, inclusive). Matches are
// anchored at line starts; members of a matched type are consumed with its
// chunk, so nested types never produce entries of their own. A body with
// no recognizable declarations yields an empty mapping — callers fall back
// to treating the whole body as one opaque unit.
func SplitTypes(body string) *Units {
	units := NewUnits()

	pos := 0
	for pos < len(body) {
		name, declStart, matchEnd := matchTypeDecl(body, pos)
		if name == "" {
			// No declaration starts on this line; move to the next one.
			nl := strings.IndexByte(body[pos:], '\n')
			if nl < 0 {
				break
			}
			pos += nl + 1
			continue
		}

		chunkEnd := typeChunkEnd(body, matchEnd)
		units.Append(name, strings.TrimSpace(body[declStart:chunkEnd]))
		pos = chunkEnd
	}
	return units
}

// matchTypeDecl tries to match a type declaration whose modifier run
// starts on the line beginning at pos. On success it returns the type
// name, the index of the first modifier (or kind) keyword, and the index
// just past the name and any generic parameter list. On failure name is
// "".
func matchTypeDecl(body string, pos int) (name string, declStart, matchEnd int) {
	p := pos
	// Leading indentation on the anchor line only.
	for p < len(body) && (body[p] == ' ' || body[p] == '\t' || body[p] == '\r') {
		p++
	}
	declStart = p

	// Optional modifier run, then a kind keyword.
	kind := ""
	for {
		word, next := scanWord(body, p)
		if word == "" {
			return "", 0, 0
		}
		if typeModifiers[word] {
			p = skipSpace(body, next)
			continue
		}
		if typeKinds[word] {
			kind = word
			p = skipSpace(body, next)
			break
		}
		return "", 0, 0
	}

	// `record class` / `record struct` carry the extra kind word before
	// the name.
	if kind == "record" {
		if word, next := scanWord(body, p); word == "class" || word == "struct" {
			p = skipSpace(body, next)
		}
	}

	ident, next := scanWord(body, p)
	if ident == "" || typeKinds[ident] || typeModifiers[ident] {
		return "", 0, 0
	}
	if c := ident[0]; c >= '0' && c <= '9' {
		return "", 0, 0
	}
	p = next

	// Optional generic parameter list, matched by angle-bracket depth.
	if p < len(body) && body[p] == '<' {
		depth := 0
		for p < len(body) {
			switch body[p] {
			case '<':
				depth++
			case '>':
				depth--
			}
			p++
			if depth == 0 {
				break
			}
		}
	}

	return ident, declStart, p
}

// scanWord reads a run of identifier characters starting at pos.
func scanWord(body string, pos int) (string, int) {
	end := pos
	for end < len(body) && isIdentChar(body[end]) {
		end++
	}
	return body[pos:end], end
}

// typeChunkEnd finds where the declaration matched at matchEnd stops: at
// the end of its brace-matched body when a brace opens before the next
// semicolon, at that semicolon for bodyless (positional record) forms, or
// at end of text when neither appears.
func typeChunkEnd(body string, matchEnd int) int {
	brace := strings.IndexByte(body[matchEnd:], '{')
	semi := strings.IndexByte(body[matchEnd:], ';')

	switch {
	case brace >= 0 && (semi < 0 || brace < semi):
		end, _ := matchBrace(body, matchEnd+brace)
		return end
	case semi >= 0:
		return matchEnd + semi + 1
	default:
		return len(body)
	}
}
