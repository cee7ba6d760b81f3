package reorg

// FindMatchingClose scans forward from openIndex, which must point at an
// opening brace, and returns the index immediately after the brace that
// balances it. If the text ends before the depth returns to zero, the end
// of the text is returned — truncated decompiler output is treated as
// implicitly closed, and callers tolerate a body that runs to end-of-text.
//
// This is a pure brace counter: braces inside string literals and comments
// are counted too.
func FindMatchingClose(text string, openIndex int) int {
	end, _ := matchBrace(text, openIndex)
	return end
}

// matchBrace is FindMatchingClose plus a flag reporting whether a balancing
// close was actually found. The partitioner needs the flag to know whether
// the final byte is a real closing brace or just where the text ran out.
func matchBrace(text string, openIndex int) (end int, balanced bool) {
	depth := 0
	for i := openIndex; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return len(text), false
}
