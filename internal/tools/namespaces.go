package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"ilspymcp/internal/ilspy"
	"ilspymcp/internal/reorg"
)

// NamespacesTool handles the list_namespaces MCP tool.
type NamespacesTool struct {
	backend *Backend
}

// NewNamespacesTool creates a NamespacesTool with the given backend.
func NewNamespacesTool(backend *Backend) *NamespacesTool {
	return &NamespacesTool{backend: backend}
}

// Definition returns the MCP tool definition for registration.
func (t *NamespacesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_namespaces",
		mcp.WithDescription(
			"List the namespaces in a .NET assembly with their declaration "+
				"form and decompiled source size. Use this to orient in an "+
				"unfamiliar assembly before fetching source.",
		),
		mcp.WithString("assembly_path",
			mcp.Required(),
			mcp.Description("Path to the assembly to inspect"),
		),
	)
}

// Handle processes the list_namespaces tool call.
func (t *NamespacesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assemblyPath, errResult := requireString(req, "assembly_path")
	if errResult != nil {
		return errResult, nil
	}

	source, err := t.backend.Source(ctx, assemblyPath, ilspy.Options{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decompiling %s: %v", assemblyPath, err)), nil
	}

	tokens := reorg.Tokenize(source)
	units := reorg.Partition(source, tokens)

	forms := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		if _, seen := forms[tok.Name]; !seen {
			forms[tok.Name] = tok.Kind.String()
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Namespaces in %s\n\n", assemblyName(assemblyPath))
	units.Each(func(name, body string) {
		form, ok := forms[name]
		if !ok {
			form = "unattributed"
		}
		fmt.Fprintf(&sb, "- **%s** (%s, %s)\n", name, form, humanize.IBytes(uint64(len(body))))
	})
	fmt.Fprintf(&sb, "\n%d namespaces", units.Len())
	sb.WriteString(sizeFooter(len(source)))

	return mcp.NewToolResultText(sb.String()), nil
}
