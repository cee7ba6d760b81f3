package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"ilspymcp/internal/ilspy"
)

// DecompileTool handles the decompile MCP tool: whole-assembly
// decompilation returned as one flat source text.
type DecompileTool struct {
	backend *Backend
}

// NewDecompileTool creates a DecompileTool with the given backend.
func NewDecompileTool(backend *Backend) *DecompileTool {
	return &DecompileTool{backend: backend}
}

// Definition returns the MCP tool definition for registration.
func (t *DecompileTool) Definition() mcp.Tool {
	return mcp.NewTool("decompile",
		mcp.WithDescription(
			"Decompile a .NET assembly (.dll or .exe) to C# source text. "+
				"Returns the complete decompiled source as one blob. For large "+
				"assemblies prefer list_namespaces + decompile_type to fetch only "+
				"what you need, or export_tree to write files to disk.",
		),
		mcp.WithString("assembly_path",
			mcp.Required(),
			mcp.Description("Path to the assembly to decompile"),
		),
	)
}

// Handle processes the decompile tool call.
func (t *DecompileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assemblyPath, errResult := requireString(req, "assembly_path")
	if errResult != nil {
		return errResult, nil
	}

	source, err := t.backend.Source(ctx, assemblyPath, ilspy.Options{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decompiling %s: %v", assemblyPath, err)), nil
	}
	if source == "" {
		return mcp.NewToolResultText(fmt.Sprintf("Decompiling %s produced no source output.", assemblyPath)), nil
	}

	var sb strings.Builder
	sb.WriteString(source)
	sb.WriteString(sizeFooter(len(source)))
	return mcp.NewToolResultText(sb.String()), nil
}
