package reorg

import "strings"

// Partition slices text into per-namespace units using the token list
// produced by Tokenize. The result maps each namespace name to its member
// source, with text outside every declaration collected under
// GlobalNamespace. Multiple regions for the same name are appended in
// encounter order, never overwritten.
//
// Block extents are brace-matched; a declaration nested inside a block is
// consumed as literal text of the parent's body and produces no entry of
// its own. File-scoped extents run from the declaration's semicolon to the
// next token or end of text. An unterminated block extends to end of text.
func Partition(text string, tokens []NamespaceToken) *Units {
	units := NewUnits()

	if len(tokens) == 0 {
		units.Append(GlobalNamespace, strings.TrimSpace(text))
		return units
	}

	cursor := 0
	// Offsets before this point sit inside an already-consumed block and
	// must not start a new top-level slice.
	consumed := 0

	for i, tok := range tokens {
		if tok.Offset < consumed {
			continue
		}
		if tok.Offset > cursor {
			appendNonBlank(units, GlobalNamespace, text[cursor:tok.Offset])
		}

		switch tok.Kind {
		case KindFileScoped:
			body := ""
			if semi := strings.IndexByte(text[tok.Offset:], ';'); semi >= 0 {
				start := tok.Offset + semi + 1
				end := len(text)
				if i+1 < len(tokens) {
					end = tokens[i+1].Offset
				}
				if start < end {
					body = text[start:end]
				}
				cursor = end
			} else {
				cursor = len(text)
			}
			units.Append(tok.Name, strings.TrimSpace(body))

		case KindBlock:
			open := strings.IndexByte(text[tok.Offset:], '{')
			if open < 0 {
				// Tokenize saw a brace here; if the text disagrees, give
				// the rest of it to this namespace and stop slicing.
				units.Append(tok.Name, strings.TrimSpace(text[tok.Offset:]))
				cursor = len(text)
				continue
			}
			openIdx := tok.Offset + open
			end, balanced := matchBrace(text, openIdx)
			innerEnd := end
			if balanced {
				innerEnd = end - 1 // exclude the closing brace
			}
			units.Append(tok.Name, strings.TrimSpace(text[openIdx+1:innerEnd]))
			cursor = end
			consumed = end
		}
	}

	if cursor < len(text) {
		appendNonBlank(units, GlobalNamespace, text[cursor:])
	}
	return units
}

// appendNonBlank appends region to units under name unless it is all
// whitespace — slack between declarations is usually just a blank line and
// must not create an empty global unit.
func appendNonBlank(units *Units, name, region string) {
	trimmed := strings.TrimSpace(region)
	if trimmed == "" {
		return
	}
	units.Append(name, trimmed)
}
