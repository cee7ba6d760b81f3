package reorg

import "testing"

func TestTokenize_BlockForm(t *testing.T) {
	tokens := Tokenize("namespace Acme.Widgets { class C { } }")
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	tok := tokens[0]
	if tok.Name != "Acme.Widgets" {
		t.Errorf("Name = %s, want Acme.Widgets", tok.Name)
	}
	if tok.Kind != KindBlock {
		t.Errorf("Kind = %s, want block", tok.Kind)
	}
	if tok.Offset != 0 {
		t.Errorf("Offset = %d, want 0", tok.Offset)
	}
}

func TestTokenize_FileScopedForm(t *testing.T) {
	tokens := Tokenize("using System;\n\nnamespace Acme;\n\nclass C { }\n")
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	if tokens[0].Name != "Acme" {
		t.Errorf("Name = %s, want Acme", tokens[0].Name)
	}
	if tokens[0].Kind != KindFileScoped {
		t.Errorf("Kind = %s, want file-scoped", tokens[0].Kind)
	}
}

func TestTokenize_MultipleDeclarations(t *testing.T) {
	text := "namespace A { }\nnamespace B;\ncode\nnamespace C.D { }"
	tokens := Tokenize(text)
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}

	wantNames := []string{"A", "B", "C.D"}
	wantKinds := []TokenKind{KindBlock, KindFileScoped, KindBlock}
	for i, tok := range tokens {
		if tok.Name != wantNames[i] {
			t.Errorf("token %d: Name = %s, want %s", i, tok.Name, wantNames[i])
		}
		if tok.Kind != wantKinds[i] {
			t.Errorf("token %d: Kind = %s, want %s", i, tok.Kind, wantKinds[i])
		}
	}
}

func TestTokenize_OffsetsMonotonic(t *testing.T) {
	text := "namespace A { namespace A.B { } }\nnamespace C;\n"
	tokens := Tokenize(text)
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Offset <= tokens[i-1].Offset {
			t.Errorf("offsets not increasing: token %d at %d, token %d at %d",
				i-1, tokens[i-1].Offset, i, tokens[i].Offset)
		}
	}
}

func TestTokenize_NestedDeclarationsAreTokenized(t *testing.T) {
	tokens := Tokenize("namespace A { namespace A.B { } }")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2 (nested declarations are tokenized too)", len(tokens))
	}
	if tokens[1].Name != "A.B" {
		t.Errorf("nested token Name = %s, want A.B", tokens[1].Name)
	}
}

func TestTokenize_NoDeclarations(t *testing.T) {
	for _, text := range []string{"", "class C { }", "// namespaces are great\nint x;"} {
		if tokens := Tokenize(text); len(tokens) != 0 {
			t.Errorf("Tokenize(%q) = %d tokens, want 0", text, len(tokens))
		}
	}
}

func TestTokenize_KeywordInsideIdentifierIgnored(t *testing.T) {
	// `mynamespace` and `namespaces` must not match the keyword.
	text := "int mynamespace = 1;\nvar namespaces = 2;\nnamespace Real { }"
	tokens := Tokenize(text)
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	if tokens[0].Name != "Real" {
		t.Errorf("Name = %s, want Real", tokens[0].Name)
	}
}

func TestTokenize_KeywordWithoutDeclarationSkipped(t *testing.T) {
	// A stray keyword with no identifier or terminator is not a token,
	// and must not prevent later declarations from being found.
	text := "// the namespace keyword\nnamespace A;"
	tokens := Tokenize(text)
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	if tokens[0].Name != "A" {
		t.Errorf("Name = %s, want A", tokens[0].Name)
	}
}

func TestTokenize_RejectsLeadingDigit(t *testing.T) {
	if tokens := Tokenize("namespace 9Bad { }"); len(tokens) != 0 {
		t.Errorf("got %d tokens, want 0 for identifier starting with a digit", len(tokens))
	}
}

func TestTokenize_RejectsMalformedDots(t *testing.T) {
	for _, text := range []string{
		"namespace .A { }",
		"namespace A..B { }",
		"namespace A. { }",
	} {
		if tokens := Tokenize(text); len(tokens) != 0 {
			t.Errorf("Tokenize(%q) = %d tokens, want 0", text, len(tokens))
		}
	}
}

func TestTokenize_DigitAllowedInsideSegments(t *testing.T) {
	tokens := Tokenize("namespace Net6.V2 { }")
	if len(tokens) != 1 || tokens[0].Name != "Net6.V2" {
		t.Fatalf("Tokenize = %+v, want one token named Net6.V2", tokens)
	}
}
