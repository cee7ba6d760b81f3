package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"ilspymcp/internal/emit"
	"ilspymcp/internal/ilspy"
)

// ExportTreeTool handles the export_tree MCP tool: decompile an
// assembly and write its source to disk as a namespace directory tree.
type ExportTreeTool struct {
	backend *Backend
}

// NewExportTreeTool creates an ExportTreeTool with the given backend.
func NewExportTreeTool(backend *Backend) *ExportTreeTool {
	return &ExportTreeTool{backend: backend}
}

// Definition returns the MCP tool definition for registration.
func (t *ExportTreeTool) Definition() mcp.Tool {
	return mcp.NewTool("export_tree",
		mcp.WithDescription(
			"Decompile a .NET assembly and write the source to disk, one "+
				"directory per namespace. With split_types each top-level type "+
				"gets its own file. Returns a manifest of the written files.",
		),
		mcp.WithString("assembly_path",
			mcp.Required(),
			mcp.Description("Path to the assembly to decompile"),
		),
		mcp.WithString("output_dir",
			mcp.Required(),
			mcp.Description("Directory to write the source tree into"),
		),
		mcp.WithBoolean("split_types",
			mcp.Description("Write one file per top-level type instead of one per namespace"),
		),
	)
}

// Handle processes the export_tree tool call.
func (t *ExportTreeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assemblyPath, errResult := requireString(req, "assembly_path")
	if errResult != nil {
		return errResult, nil
	}
	outputDir, errResult := requireString(req, "output_dir")
	if errResult != nil {
		return errResult, nil
	}
	splitTypes := req.GetBool("split_types", false)

	source, err := t.backend.Source(ctx, assemblyPath, ilspy.Options{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decompiling %s: %v", assemblyPath, err)), nil
	}

	root, err := filepath.Abs(outputDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolving output dir %s: %v", outputDir, err)), nil
	}
	files, err := emit.WriteTree(root, source, splitTypes)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("writing tree to %s: %v", root, err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Exported %s to %s\n\n", assemblyName(assemblyPath), root)
	writeManifest(&sb, files)
	return mcp.NewToolResultText(sb.String()), nil
}
