package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"ilspymcp/internal/ilspy"
)

// StatusTool handles the decompiler_status MCP tool.
type StatusTool struct {
	backend *Backend
}

// NewStatusTool creates a StatusTool with the given backend.
func NewStatusTool(backend *Backend) *StatusTool {
	return &StatusTool{backend: backend}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("decompiler_status",
		mcp.WithDescription(
			"Report the resolved decompiler binary and version, the active "+
				"limits, and cache statistics. Run this first if other tools "+
				"report that no decompiler is available.",
		),
	)
}

// Handle processes the decompiler_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString("## Decompiler status\n\n")

	if t.backend.Runner == nil {
		sb.WriteString("❌ **No decompiler found.** " + ilspy.InstallHint + "\n")
	} else {
		info := t.backend.Runner.Info()
		fmt.Fprintf(&sb, "✅ **ilspycmd** at `%s`", info.Path)
		if info.Version != "" {
			fmt.Fprintf(&sb, " (version %s)", info.Version)
		}
		sb.WriteString("\n")
	}

	cfg := t.backend.Cfg
	sb.WriteString("\n### Limits\n\n")
	fmt.Fprintf(&sb, "- max files per decompile: %d\n", cfg.MaxFiles)
	fmt.Fprintf(&sb, "- max output size: %s\n", humanize.IBytes(uint64(cfg.MaxBytes)))
	fmt.Fprintf(&sb, "- concurrent decompiles: %d\n", cfg.Concurrency)
	fmt.Fprintf(&sb, "- timeout: %ds\n", cfg.TimeoutSeconds)

	sb.WriteString("\n### Cache\n\n")
	switch {
	case t.backend.Cache == nil:
		sb.WriteString("disabled\n")
	default:
		n, err := t.backend.Cache.Len()
		if err != nil {
			fmt.Fprintf(&sb, "unavailable: %v\n", err)
		} else {
			fmt.Fprintf(&sb, "%d cached results at `%s`\n", n, cfg.CachePath())
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}
