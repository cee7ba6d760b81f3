// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it loads configuration, resolves the
// decompiler, opens the cache, and injects them into the tools,
// prompts, and resources. No business logic lives here — only wiring.
package server

import (
	"errors"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"ilspymcp/internal/cache"
	"ilspymcp/internal/config"
	"ilspymcp/internal/ilspy"
	"ilspymcp/internal/prompts"
	"ilspymcp/internal/resources"
	"ilspymcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
//
// Both the decompiler and the cache degrade rather than fail: a missing
// ilspycmd binary or a broken cache database produce a warning on
// stderr and a server that still starts, so decompiler_status can
// explain the problem to the caller.
//
// The returned cleanup function closes the cache database and must be
// called on shutdown (typically via defer). It is always non-nil and
// safe to call even if cache init failed.
func New() (*server.MCPServer, func(), error) {
	cfg := config.Load()

	backend := &tools.Backend{Cfg: cfg}

	info, err := ilspy.Resolve(cfg)
	switch {
	case err == nil:
		backend.Runner = ilspy.NewRunner(cfg, info)
	case errors.Is(err, ilspy.ErrNotFound):
		log.Printf("WARNING: no decompiler found: %v", err)
	default:
		log.Printf("WARNING: decompiler resolution failed: %v", err)
	}

	cleanup := noop
	if cfg.CacheEnabled {
		c, err := cache.Open(cfg.CachePath())
		if err != nil {
			log.Printf("WARNING: result cache disabled: %v", err)
		} else {
			backend.Cache = c
			cleanup = func() {
				if err := c.Close(); err != nil {
					log.Printf("WARNING: cache close: %v", err)
				}
			}
		}
	}

	s := server.NewMCPServer(
		"ilspymcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	decompileTool := tools.NewDecompileTool(backend)
	s.AddTool(decompileTool.Definition(), decompileTool.Handle)

	decompileTypeTool := tools.NewDecompileTypeTool(backend)
	s.AddTool(decompileTypeTool.Definition(), decompileTypeTool.Handle)

	namespacesTool := tools.NewNamespacesTool(backend)
	s.AddTool(namespacesTool.Definition(), namespacesTool.Handle)

	typesTool := tools.NewTypesTool(backend)
	s.AddTool(typesTool.Definition(), typesTool.Handle)

	exportTreeTool := tools.NewExportTreeTool(backend)
	s.AddTool(exportTreeTool.Definition(), exportTreeTool.Handle)

	exportProjectTool := tools.NewExportProjectTool(backend)
	s.AddTool(exportProjectTool.Definition(), exportProjectTool.Handle)

	statusTool := tools.NewStatusTool(backend)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	// --- Register prompts ---

	explorePrompt := prompts.NewExplorePrompt()
	s.AddPrompt(explorePrompt.Definition(), explorePrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(backend)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, cleanup, nil
}

// noop is the default cleanup when the cache is disabled or failed.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the decompiler tools effectively.
func serverInstructions() string {
	return `You have access to ilspymcp, a .NET assembly decompilation MCP server
built on ilspycmd (the ILSpy command-line decompiler).

## When to use it
Use these tools whenever you need to understand what a compiled .NET
assembly (.dll or .exe) does: inspecting a NuGet package, debugging
against a closed-source dependency, auditing a binary, or porting code
you only have in compiled form.

## Workflow — work from broad to narrow
Decompiled output can be large. Fetch the minimum you need:

1. decompiler_status — verify ilspycmd is available before anything else
2. list_namespaces — orient in the assembly's structure
3. list_types — find the fully qualified names inside a namespace
4. decompile_type — fetch the source of one type at a time
5. decompile — only for small assemblies where you want everything at once

## Exporting to disk
- export_tree writes the decompiled source as a directory tree, one
  directory per namespace. Pass split_types=true for one file per type.
- export_project does the same and adds a generated .csproj, so the
  output can be opened in an IDE or built with dotnet build.
Use these instead of decompile when the user wants files, or when the
assembly is too large to return as text.

## Important
- Type names must be fully qualified (Namespace.TypeName) — get them
  from list_types, do not guess.
- Results are cached per assembly version; repeated calls are cheap.
- If tools report that no decompiler is available, tell the user to run
  "ilspymcp install" or "dotnet tool install --global ilspycmd".
- Decompiled source is a reconstruction: names of locals and compiler-
  generated members may differ from the original code.`
}
