// Package prompts implements MCP prompt handlers.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ExplorePrompt handles the explore_assembly MCP prompt.
// It guides the AI through a broad-to-narrow walk of an assembly.
type ExplorePrompt struct{}

// NewExplorePrompt creates an ExplorePrompt.
func NewExplorePrompt() *ExplorePrompt {
	return &ExplorePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ExplorePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("explore_assembly",
		mcp.WithPromptDescription(
			"Explore a .NET assembly step by step: check the decompiler, "+
				"list its namespaces and types, then decompile the interesting "+
				"parts on demand.",
		),
		mcp.WithArgument("assembly_path",
			mcp.ArgumentDescription("Path to the .dll or .exe to explore"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the explore_assembly prompt request.
func (p *ExplorePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	assemblyPath := ""
	if args := req.Params.Arguments; args != nil {
		assemblyPath = args["assembly_path"]
	}
	if assemblyPath == "" {
		assemblyPath = "<ask me for the path>"
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Explore assembly: %s", assemblyPath),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to understand what the .NET assembly at '%s' does.\n\n"+
						"Please:\n"+
						"1. Run `decompiler_status` to confirm the decompiler is available\n"+
						"2. Run `list_namespaces` with assembly_path='%s' and summarize the structure\n"+
						"3. Ask me which namespace looks interesting, then run `list_types` on it\n"+
						"4. Decompile the types I pick one at a time with `decompile_type`\n"+
						"5. Offer `export_project` if I want the whole thing on disk as a buildable project\n\n"+
						"Keep responses focused — don't dump large source blobs unless I ask.",
					assemblyPath, assemblyPath,
				)),
			},
		},
	}, nil
}
