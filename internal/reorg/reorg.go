// Package reorg reorganizes decompiled C# text along namespace and type
// boundaries. It is a lexical partitioner, not a parser: it scans raw text
// for namespace and type declarations, matches braces by depth counting,
// and slices the input into per-namespace and per-type units.
//
// The package is total over its input — any string, including empty or
// truncated decompiler output, produces a result without error. Braces
// inside string literals or comments are counted like any other brace;
// decompiler output doesn't hit this in practice, and it is a documented
// limitation rather than something this package tries to fix.
//
// All functions are pure and safe to call concurrently on independent
// inputs.
package reorg

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// GlobalNamespace is the sentinel unit name for text not attributed to any
// namespace declaration (leading attributes, top-level statements, trailing
// junk).
const GlobalNamespace = "(global)"

// Units is an insertion-ordered mapping from a namespace or type name to
// its source text. Appending to an existing name concatenates with a
// newline separator — a name may legitimately receive multiple disjoint
// regions (two file-scoped declarations of the same namespace, partial
// classes) and none of them may be dropped.
type Units struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewUnits creates an empty unit collection.
func NewUnits() *Units {
	return &Units{m: orderedmap.New[string, string]()}
}

// Append adds body under name, concatenating with a newline separator when
// the name already has content. Empty bodies are stored as-is so that a
// deliberately empty unit (e.g. an empty global bucket) survives.
func (u *Units) Append(name, body string) {
	if existing, ok := u.m.Get(name); ok {
		u.m.Set(name, existing+"\n"+body)
		return
	}
	u.m.Set(name, body)
}

// Get returns the accumulated body for name.
func (u *Units) Get(name string) (string, bool) {
	return u.m.Get(name)
}

// Len returns the number of distinct names.
func (u *Units) Len() int {
	return u.m.Len()
}

// Names returns all names in insertion order.
func (u *Units) Names() []string {
	names := make([]string, 0, u.m.Len())
	for pair := u.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Each calls fn for every (name, body) pair in insertion order.
func (u *Units) Each(fn func(name, body string)) {
	for pair := u.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Join concatenates all bodies in insertion order, separated by newlines.
func (u *Units) Join() string {
	var parts []string
	u.Each(func(_, body string) {
		parts = append(parts, body)
	})
	return strings.Join(parts, "\n")
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// skipSpace returns the first index at or after pos that is not whitespace.
func skipSpace(text string, pos int) int {
	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}
	return pos
}
