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

// ExportProjectTool handles the export_project MCP tool: export_tree
// with types split plus a generated .csproj so the output builds.
type ExportProjectTool struct {
	backend *Backend
}

// NewExportProjectTool creates an ExportProjectTool with the given backend.
func NewExportProjectTool(backend *Backend) *ExportProjectTool {
	return &ExportProjectTool{backend: backend}
}

// Definition returns the MCP tool definition for registration.
func (t *ExportProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("export_project",
		mcp.WithDescription(
			"Decompile a .NET assembly and write a buildable C# project to "+
				"disk: one file per type, one directory per namespace, plus a "+
				"generated .csproj. Returns a manifest of the written files.",
		),
		mcp.WithString("assembly_path",
			mcp.Required(),
			mcp.Description("Path to the assembly to decompile"),
		),
		mcp.WithString("output_dir",
			mcp.Required(),
			mcp.Description("Directory to write the project into"),
		),
	)
}

// Handle processes the export_project tool call.
func (t *ExportProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assemblyPath, errResult := requireString(req, "assembly_path")
	if errResult != nil {
		return errResult, nil
	}
	outputDir, errResult := requireString(req, "output_dir")
	if errResult != nil {
		return errResult, nil
	}

	source, err := t.backend.Source(ctx, assemblyPath, ilspy.Options{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decompiling %s: %v", assemblyPath, err)), nil
	}

	root, err := filepath.Abs(outputDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolving output dir %s: %v", outputDir, err)), nil
	}
	name := assemblyName(assemblyPath)
	files, err := emit.WriteProject(root, name, source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("writing project to %s: %v", root, err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Exported project %s to %s\n\n", name, root)
	writeManifest(&sb, files)
	sb.WriteString("\nBuild with `dotnet build` from the output directory.")
	return mcp.NewToolResultText(sb.String()), nil
}
