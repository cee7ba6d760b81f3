// Package emit writes reorganized decompiler output to disk in the
// presentation shapes the MCP tools expose: a per-namespace source tree
// and a synthetic C# project. Every generated file is re-prefixed with
// the hoisted using directives and a synthesized namespace declaration
// matching whichever form the original used, so each file stands alone.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ilspymcp/internal/reorg"
)

// File is one manifest entry for an emitted file.
type File struct {
	// Path is relative to the emit root, using forward slashes.
	Path string
	// Size is the written size in bytes.
	Size int64
}

// globalFileName is where unattributed text ends up.
const globalFileName = "Global.cs"

// WriteTree reorganizes text and writes one directory per namespace
// (dots become path separators) under root. With splitTypes, each
// recognized top-level type gets its own file; a namespace where no
// types are recognized falls back to a single file either way. Returns
// the manifest of written files in emission order.
func WriteTree(root, text string, splitTypes bool) ([]File, error) {
	tokens := reorg.Tokenize(text)
	units := reorg.Partition(text, tokens)
	header := reorg.ExtractHeader(text)
	kinds := kindByName(tokens)

	var manifest []File
	var failure error

	units.Each(func(name, body string) {
		if failure != nil {
			return
		}
		files, err := writeUnit(root, name, body, header, kinds, splitTypes)
		if err != nil {
			failure = err
			return
		}
		manifest = append(manifest, files...)
	})

	return manifest, failure
}

// writeUnit emits one namespace unit as one or more files.
func writeUnit(root, name, body, header string, kinds map[string]reorg.TokenKind, splitTypes bool) ([]File, error) {
	if name == reorg.GlobalNamespace {
		residual := globalResidual(header, body)
		if residual == "" {
			// The global bucket held only the directives already hoisted
			// onto every other unit; a file for it would be pure noise.
			return nil, nil
		}
		f, err := writeSource(root, globalFileName, renderGlobal(header, residual))
		if err != nil {
			return nil, err
		}
		return []File{f}, nil
	}

	dir := filepath.FromSlash(strings.ReplaceAll(name, ".", "/"))
	kind := kinds[name]

	if splitTypes {
		types := reorg.SplitTypes(body)
		if types.Len() > 0 {
			var files []File
			var failure error
			types.Each(func(typeName, chunk string) {
				if failure != nil {
					return
				}
				f, err := writeSource(root, filepath.Join(dir, sanitizeFileName(typeName)+".cs"),
					renderUnit(name, kind, header, chunk))
				if err != nil {
					failure = err
					return
				}
				files = append(files, f)
			})
			return files, failure
		}
		// No recognizable types: the whole body is one opaque unit.
	}

	segments := strings.Split(name, ".")
	fileName := sanitizeFileName(segments[len(segments)-1]) + ".cs"
	f, err := writeSource(root, filepath.Join(dir, fileName), renderUnit(name, kind, header, body))
	if err != nil {
		return nil, err
	}
	return []File{f}, nil
}

// kindByName maps each namespace name to the form of its first
// declaration — when a name appears in both forms, the first one
// encountered decides how the synthesized declaration looks.
func kindByName(tokens []reorg.NamespaceToken) map[string]reorg.TokenKind {
	kinds := make(map[string]reorg.TokenKind, len(tokens))
	for _, tok := range tokens {
		if _, seen := kinds[tok.Name]; !seen {
			kinds[tok.Name] = tok.Kind
		}
	}
	return kinds
}

// renderUnit builds a standalone compilation unit for one namespace.
func renderUnit(name string, kind reorg.TokenKind, header, body string) string {
	var sb strings.Builder
	if header != "" {
		sb.WriteString(header)
		sb.WriteString("\n\n")
	}
	if kind == reorg.KindFileScoped {
		sb.WriteString("namespace " + name + ";\n\n")
		sb.WriteString(body)
		sb.WriteString("\n")
		return sb.String()
	}
	sb.WriteString("namespace " + name + "\n{\n")
	sb.WriteString(body)
	sb.WriteString("\n}\n")
	return sb.String()
}

// renderGlobal builds the file for unattributed text — no synthesized
// declaration, just the hoisted header when one exists.
func renderGlobal(header, body string) string {
	if header == "" {
		return body + "\n"
	}
	return header + "\n\n" + body + "\n"
}

// globalResidual removes from the global bucket the lines that are
// already hoisted as header directives and returns what's left,
// trimmed. The partitioner attributes leading using lines to the
// global bucket; re-emitting them there would duplicate the header.
func globalResidual(header, body string) string {
	if header == "" {
		return strings.TrimSpace(body)
	}
	hoisted := make(map[string]bool)
	for _, line := range strings.Split(header, "\n") {
		hoisted[strings.TrimSpace(line)] = true
	}
	var keep []string
	for _, line := range strings.Split(body, "\n") {
		if hoisted[strings.TrimSpace(line)] {
			continue
		}
		keep = append(keep, line)
	}
	return strings.TrimSpace(strings.Join(keep, "\n"))
}

// writeSource writes content under root at relPath, creating parent
// directories, and returns the manifest entry. The write goes through a
// temp file in the target directory followed by a rename so a crashed
// export never leaves a half-written source file.
func writeSource(root, relPath, content string) (File, error) {
	abs := filepath.Join(root, relPath)
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return File{}, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ilspymcp-*")
	if err != nil {
		return File{}, fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return File{}, fmt.Errorf("writing %s: %w", relPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return File{}, fmt.Errorf("closing %s: %w", relPath, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		_ = os.Remove(tmpName)
		return File{}, fmt.Errorf("renaming into place %s: %w", relPath, err)
	}

	return File{Path: filepath.ToSlash(relPath), Size: int64(len(content))}, nil
}

// sanitizeFileName strips characters that are unsafe in file names and
// the generic arity suffix decompilers attach to type names (List`1).
func sanitizeFileName(name string) string {
	if i := strings.IndexByte(name, '`'); i >= 0 {
		name = name[:i]
	}
	var sb strings.Builder
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			sb.WriteByte('_')
		default:
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}
