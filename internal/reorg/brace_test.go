package reorg

import "testing"

func TestFindMatchingClose_Simple(t *testing.T) {
	text := "{ x }"
	got := FindMatchingClose(text, 0)
	if got != 5 {
		t.Errorf("FindMatchingClose = %d, want 5", got)
	}
}

func TestFindMatchingClose_Nested(t *testing.T) {
	text := "{ a { b { c } } d } tail"
	got := FindMatchingClose(text, 0)
	if got != 19 {
		t.Errorf("FindMatchingClose = %d, want 19", got)
	}
	if text[got-1] != '}' {
		t.Errorf("char before returned index = %q, want '}'", text[got-1])
	}
}

func TestFindMatchingClose_InnerBrace(t *testing.T) {
	text := "{ outer { inner } }"
	got := FindMatchingClose(text, 8)
	if got != 17 {
		t.Errorf("FindMatchingClose(inner) = %d, want 17", got)
	}
}

func TestFindMatchingClose_Unterminated(t *testing.T) {
	text := "{ never closed"
	got := FindMatchingClose(text, 0)
	if got != len(text) {
		t.Errorf("FindMatchingClose = %d, want end of text %d", got, len(text))
	}
}

func TestFindMatchingClose_UnterminatedNested(t *testing.T) {
	text := "{ a { b }"
	got := FindMatchingClose(text, 0)
	if got != len(text) {
		t.Errorf("FindMatchingClose = %d, want end of text %d", got, len(text))
	}
}

// Braces in string literals are counted — the scanner is lexical by
// design. This pins the documented limitation so a change shows up.
func TestFindMatchingClose_CountsBracesInLiterals(t *testing.T) {
	text := `{ var s = "}"; }`
	got := FindMatchingClose(text, 0)
	if got != 12 {
		t.Errorf("FindMatchingClose = %d, want 12 (the literal's brace closes the block)", got)
	}
}

func TestMatchBrace_BalancedFlag(t *testing.T) {
	if _, ok := matchBrace("{ }", 0); !ok {
		t.Error("matchBrace on balanced input: balanced = false, want true")
	}
	if _, ok := matchBrace("{ ", 0); ok {
		t.Error("matchBrace on truncated input: balanced = true, want false")
	}
}
