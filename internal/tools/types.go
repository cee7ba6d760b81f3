package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"ilspymcp/internal/ilspy"
	"ilspymcp/internal/reorg"
)

// TypesTool handles the list_types MCP tool.
type TypesTool struct {
	backend *Backend
}

// NewTypesTool creates a TypesTool with the given backend.
func NewTypesTool(backend *Backend) *TypesTool {
	return &TypesTool{backend: backend}
}

// Definition returns the MCP tool definition for registration.
func (t *TypesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_types",
		mcp.WithDescription(
			"List the top-level types per namespace in a .NET assembly. "+
				"Pass the resulting fully qualified names to decompile_type. "+
				"Optionally filter to a single namespace.",
		),
		mcp.WithString("assembly_path",
			mcp.Required(),
			mcp.Description("Path to the assembly to inspect"),
		),
		mcp.WithString("namespace",
			mcp.Description("Only list types in this namespace"),
		),
	)
}

// Handle processes the list_types tool call.
func (t *TypesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assemblyPath, errResult := requireString(req, "assembly_path")
	if errResult != nil {
		return errResult, nil
	}
	filter := strings.TrimSpace(req.GetString("namespace", ""))

	source, err := t.backend.Source(ctx, assemblyPath, ilspy.Options{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decompiling %s: %v", assemblyPath, err)), nil
	}

	units := reorg.Partition(source, reorg.Tokenize(source))

	if filter != "" {
		if _, ok := units.Get(filter); !ok {
			return mcp.NewToolResultError(fmt.Sprintf(
				"namespace %s not found — list_namespaces shows what exists", filter)), nil
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Types in %s\n\n", assemblyName(assemblyPath))

	total := 0
	units.Each(func(name, body string) {
		if filter != "" && name != filter {
			return
		}
		fmt.Fprintf(&sb, "### %s\n\n", name)
		types := reorg.SplitTypes(body)
		if types.Len() == 0 {
			sb.WriteString("_no recognizable top-level types_\n\n")
			return
		}
		types.Each(func(typeName, _ string) {
			total++
			if name == reorg.GlobalNamespace {
				fmt.Fprintf(&sb, "- %s\n", typeName)
				return
			}
			fmt.Fprintf(&sb, "- %s.%s\n", name, typeName)
		})
		sb.WriteString("\n")
	})

	fmt.Fprintf(&sb, "%d types", total)
	return mcp.NewToolResultText(sb.String()), nil
}
