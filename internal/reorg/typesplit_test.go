package reorg

import (
	"strings"
	"testing"
)

func TestSplitTypes_SingleClass(t *testing.T) {
	body := "public sealed class Foo { int x; }"
	units := SplitTypes(body)
	if units.Len() != 1 {
		t.Fatalf("Len = %d, want 1; names %v", units.Len(), units.Names())
	}
	if got := mustGet(t, units, "Foo"); got != body {
		t.Errorf("Foo chunk = %q, want full declaration", got)
	}
}

func TestSplitTypes_NoTypes(t *testing.T) {
	units := SplitTypes("int x;\nvoid M() { }\n")
	if units.Len() != 0 {
		t.Errorf("Len = %d, want 0 (caller falls back to whole body)", units.Len())
	}
}

func TestSplitTypes_EmptyBody(t *testing.T) {
	if units := SplitTypes(""); units.Len() != 0 {
		t.Errorf("Len = %d, want 0", units.Len())
	}
}

func TestSplitTypes_MultipleTypes(t *testing.T) {
	body := "public class A\n{\n    void M() { }\n}\n\ninternal struct B\n{\n    int x;\n}\n\npublic enum Color\n{\n    Red,\n    Green\n}\n"
	units := SplitTypes(body)
	want := []string{"A", "B", "Color"}
	got := units.Names()
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if chunk := mustGet(t, units, "B"); !strings.HasPrefix(chunk, "internal struct B") || !strings.HasSuffix(chunk, "}") {
		t.Errorf("B chunk = %q", chunk)
	}
}

func TestSplitTypes_AllKindKeywords(t *testing.T) {
	for _, kind := range []string{"class", "struct", "interface", "enum", "record"} {
		body := "public " + kind + " T { }"
		units := SplitTypes(body)
		if units.Len() != 1 {
			t.Errorf("%s: Len = %d, want 1", kind, units.Len())
			continue
		}
		if _, ok := units.Get("T"); !ok {
			t.Errorf("%s: unit T missing; have %v", kind, units.Names())
		}
	}
}

func TestSplitTypes_NoModifiers(t *testing.T) {
	units := SplitTypes("class Bare { }")
	if _, ok := units.Get("Bare"); !ok {
		t.Fatalf("unit Bare missing; have %v", units.Names())
	}
}

func TestSplitTypes_GenericType(t *testing.T) {
	body := "public class Dictionary<TKey, TValue>\n{\n    TValue Get(TKey key) { return default; }\n}"
	units := SplitTypes(body)
	if units.Len() != 1 {
		t.Fatalf("Len = %d, want 1; names %v", units.Len(), units.Names())
	}
	if got := mustGet(t, units, "Dictionary"); got != body {
		t.Errorf("chunk = %q, want full declaration (generic args excluded from name)", got)
	}
}

func TestSplitTypes_NestedGenericArgs(t *testing.T) {
	units := SplitTypes("internal class Wrapper<T, U<V>> { }")
	if _, ok := units.Get("Wrapper"); !ok {
		t.Fatalf("unit Wrapper missing; have %v", units.Names())
	}
}

func TestSplitTypes_BodylessRecord(t *testing.T) {
	body := "public record Point(int X, int Y);\n\npublic record Size(int W, int H);\n"
	units := SplitTypes(body)
	if units.Len() != 2 {
		t.Fatalf("Len = %d, want 2; names %v", units.Len(), units.Names())
	}
	if got := mustGet(t, units, "Point"); got != "public record Point(int X, int Y);" {
		t.Errorf("Point chunk = %q", got)
	}
}

func TestSplitTypes_RecordStruct(t *testing.T) {
	units := SplitTypes("public readonly record struct Angle(double Degrees);")
	if got := mustGet(t, units, "Angle"); !strings.HasSuffix(got, ";") {
		t.Errorf("Angle chunk = %q, want semicolon-terminated declaration", got)
	}
}

func TestSplitTypes_NestedTypeConsumedWithParent(t *testing.T) {
	body := "public class Outer\n{\n    private class Inner { }\n}\n"
	units := SplitTypes(body)
	if units.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (nested type belongs to parent chunk); names %v", units.Len(), units.Names())
	}
	if chunk := mustGet(t, units, "Outer"); !strings.Contains(chunk, "class Inner") {
		t.Errorf("Outer chunk = %q, want it to contain the nested type", chunk)
	}
}

func TestSplitTypes_PartialClassAppends(t *testing.T) {
	body := "public partial class P { int a; }\npublic partial class P { int b; }\n"
	units := SplitTypes(body)
	if units.Len() != 1 {
		t.Fatalf("Len = %d, want 1", units.Len())
	}
	got := mustGet(t, units, "P")
	if !strings.Contains(got, "int a;") || !strings.Contains(got, "int b;") {
		t.Errorf("P chunk = %q, want both partial declarations", got)
	}
}

func TestSplitTypes_BaseListBeforeBrace(t *testing.T) {
	body := "public class Handler : IHandler, IDisposable\n{\n    void Run() { }\n}"
	units := SplitTypes(body)
	if got := mustGet(t, units, "Handler"); got != body {
		t.Errorf("Handler chunk = %q, want declaration through closing brace", got)
	}
}

func TestSplitTypes_KeywordInsideBodyIgnored(t *testing.T) {
	// `class` appearing mid-line inside a body must not start a match.
	body := "public class A\n{\n    string s = \"a class here\";\n}\n"
	units := SplitTypes(body)
	if units.Len() != 1 {
		t.Errorf("Len = %d, want 1; names %v", units.Len(), units.Names())
	}
}

func TestSplitTypes_UnterminatedBody(t *testing.T) {
	units := SplitTypes("public class Broken {\n    int x;")
	got := mustGet(t, units, "Broken")
	if !strings.Contains(got, "int x;") {
		t.Errorf("Broken chunk = %q, want body extended to end of text", got)
	}
}

func TestSplitTypes_AttributeLinesSkipped(t *testing.T) {
	body := "[Serializable]\npublic class Tagged { }\n"
	units := SplitTypes(body)
	if _, ok := units.Get("Tagged"); !ok {
		t.Fatalf("unit Tagged missing; have %v", units.Names())
	}
}
