// Package tools implements the MCP tool handlers.
//
// Each tool is a struct holding its dependencies and exposing a
// Definition for registration plus a Handle compatible with mcp-go's
// CallToolRequest signature. One file per tool. Input problems and
// collaborator failures are returned as tool error results, never as
// Go errors — a handler error would tear down the whole request, while
// a tool error is something the caller can read and act on.
package tools

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"ilspymcp/internal/cache"
	"ilspymcp/internal/config"
	"ilspymcp/internal/emit"
	"ilspymcp/internal/ilspy"
)

// Backend bundles the shared dependencies behind every tool: the
// configuration, the decompiler runner (nil when no binary could be
// resolved) and the result cache (nil when disabled or unavailable).
type Backend struct {
	Cfg    config.Config
	Runner *ilspy.Runner
	Cache  *cache.Cache
}

// Source returns the decompiled text for an assembly, consulting the
// cache first. Cache failures degrade to a logged warning — they must
// never turn a working decompile into a tool error.
func (b *Backend) Source(ctx context.Context, assemblyPath string, opts ilspy.Options) (string, error) {
	if b.Runner == nil {
		return "", fmt.Errorf("no decompiler available — %s", ilspy.InstallHint)
	}

	abs, err := filepath.Abs(assemblyPath)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", assemblyPath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("assembly %s: %w", assemblyPath, err)
	}

	var key string
	if b.Cache != nil {
		key = cache.Key(abs, info, b.Runner.Info().Version, opts.TypeName)
		source, ok, err := b.Cache.Get(key)
		if err != nil {
			log.Printf("WARNING: cache read: %v", err)
		} else if ok {
			return source, nil
		}
	}

	source, err := b.Runner.Decompile(ctx, abs, opts)
	if err != nil {
		return "", err
	}

	if b.Cache != nil {
		if err := b.Cache.Put(key, abs, source); err != nil {
			log.Printf("WARNING: cache write: %v", err)
		}
	}
	return source, nil
}

// requireString fetches a required string argument, trimmed.
func requireString(req mcp.CallToolRequest, name string) (string, *mcp.CallToolResult) {
	v := strings.TrimSpace(req.GetString(name, ""))
	if v == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("'%s' is required", name))
	}
	return v, nil
}

// assemblyName derives a display/project name from the assembly path.
func assemblyName(assemblyPath string) string {
	base := filepath.Base(assemblyPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sizeFooter renders the standard response footer with the source size.
func sizeFooter(n int) string {
	return fmt.Sprintf("\n\n📏 %s of decompiled source", humanize.IBytes(uint64(n)))
}

// writeManifest renders an emitted-file manifest as a markdown list.
func writeManifest(sb *strings.Builder, files []emit.File) {
	var total int64
	for _, f := range files {
		fmt.Fprintf(sb, "- `%s` (%s)\n", f.Path, humanize.IBytes(uint64(f.Size)))
		total += f.Size
	}
	fmt.Fprintf(sb, "\n%d files, %s total\n", len(files), humanize.IBytes(uint64(total)))
}
