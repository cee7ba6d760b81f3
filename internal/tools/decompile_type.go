package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"ilspymcp/internal/ilspy"
)

// DecompileTypeTool handles the decompile_type MCP tool: decompilation
// restricted to a single fully qualified type.
type DecompileTypeTool struct {
	backend *Backend
}

// NewDecompileTypeTool creates a DecompileTypeTool with the given backend.
func NewDecompileTypeTool(backend *Backend) *DecompileTypeTool {
	return &DecompileTypeTool{backend: backend}
}

// Definition returns the MCP tool definition for registration.
func (t *DecompileTypeTool) Definition() mcp.Tool {
	return mcp.NewTool("decompile_type",
		mcp.WithDescription(
			"Decompile a single type from a .NET assembly to C# source. "+
				"Use the fully qualified name (e.g. Acme.Widgets.Widget). "+
				"Find type names with list_types first.",
		),
		mcp.WithString("assembly_path",
			mcp.Required(),
			mcp.Description("Path to the assembly containing the type"),
		),
		mcp.WithString("type_name",
			mcp.Required(),
			mcp.Description("Fully qualified name of the type to decompile"),
		),
	)
}

// Handle processes the decompile_type tool call.
func (t *DecompileTypeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assemblyPath, errResult := requireString(req, "assembly_path")
	if errResult != nil {
		return errResult, nil
	}
	typeName, errResult := requireString(req, "type_name")
	if errResult != nil {
		return errResult, nil
	}

	source, err := t.backend.Source(ctx, assemblyPath, ilspy.Options{TypeName: typeName})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decompiling type %s: %v", typeName, err)), nil
	}
	if source == "" {
		return mcp.NewToolResultError(fmt.Sprintf(
			"type %s produced no output — check the name with list_types", typeName)), nil
	}

	return mcp.NewToolResultText(source + sizeFooter(len(source))), nil
}
