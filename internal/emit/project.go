package emit

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"ilspymcp/internal/reorg"
)

//go:embed csproj.tmpl
var csprojTemplate string

// projectData feeds the csproj template.
type projectData struct {
	AssemblyName  string
	RootNamespace string
}

// WriteProject writes the full project shape: the type-split source
// tree plus a generated .csproj at the root, ready for `dotnet build`
// (modulo missing references — the decompiler doesn't know them).
func WriteProject(root, assemblyName, text string) ([]File, error) {
	manifest, err := WriteTree(root, text, true)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("csproj").Parse(csprojTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing csproj template: %w", err)
	}

	var buf bytes.Buffer
	data := projectData{
		AssemblyName:  assemblyName,
		RootNamespace: rootNamespace(text, assemblyName),
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering csproj: %w", err)
	}

	f, err := writeSource(root, sanitizeFileName(assemblyName)+".csproj", buf.String())
	if err != nil {
		return nil, err
	}
	return append(manifest, f), nil
}

// rootNamespace picks the RootNamespace property: the first declared
// namespace's first segment, falling back to the assembly name.
func rootNamespace(text, assemblyName string) string {
	tokens := reorg.Tokenize(text)
	if len(tokens) == 0 {
		return assemblyName
	}
	seg, _, _ := strings.Cut(tokens[0].Name, ".")
	return seg
}
