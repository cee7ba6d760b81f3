// ilspymcp: .NET assembly decompilation MCP server
//
// Exposes the ilspycmd decompiler over MCP so any AI coding tool
// (Claude Code, Cursor, VS Code Copilot, ...) can inspect compiled
// .NET assemblies: list namespaces and types, decompile single types,
// or export a whole assembly as a buildable C# project.
//
// Usage:
//
//	ilspymcp serve     # Start MCP server (stdio transport)
//	ilspymcp install   # Install the ilspycmd decompiler via dotnet
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"ilspymcp/internal/config"
	"ilspymcp/internal/ilspy"
	"ilspymcp/internal/server"
)

func main() {
	// MCP's stdio transport owns stdout; all diagnostics go to stderr.
	log.SetOutput(os.Stderr)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "install":
		runInstall()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("ilspymcp v%s\n", server.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := server.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	return mcpserver.ServeStdio(s)
}

// runInstall bootstraps ilspycmd as a dotnet global tool and reports
// what got resolved.
func runInstall() {
	fmt.Fprintf(os.Stderr, "⬇️  Installing ilspycmd via dotnet tool...\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := ilspy.Install(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Install failed: %v\n", err)
		os.Exit(1)
	}

	info, err := ilspy.Resolve(config.Load())
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Installed, but the binary could not be resolved: %v\n", err)
		fmt.Fprintf(os.Stderr, "   Make sure ~/.dotnet/tools is on your PATH.\n")
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ ilspycmd ready at %s", info.Path)
	if info.Version != "" {
		fmt.Fprintf(os.Stderr, " (version %s)", info.Version)
	}
	fmt.Fprintln(os.Stderr)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ilspymcp v%s — .NET assembly decompilation MCP server

Usage:
  ilspymcp serve     Start the MCP server (stdio transport)
  ilspymcp install   Install the ilspycmd decompiler (requires dotnet SDK)

Configuration (environment variables):
  ILSPYMCP_ILSPYCMD          Explicit path to the ilspycmd binary
  ILSPYMCP_MAX_FILES         Max decompiled files per run (default 1000)
  ILSPYMCP_MAX_BYTES         Max decompiled bytes per run (default 10 MiB)
  ILSPYMCP_CONCURRENCY       Concurrent decompiler processes (default 2)
  ILSPYMCP_TIMEOUT_SECONDS   Per-run timeout (default 120)
  ILSPYMCP_DATA_DIR          Cache and scratch location (default ~/.ilspymcp)
  ILSPYMCP_CACHE             Set to false to disable the result cache

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "ilspymcp": {
        "command": "ilspymcp",
        "args": ["serve"]
      }
    }
  }
`, server.Version)
}
