// Package resources implements MCP resource handlers.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (ilspy://...) following MCP
// conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"ilspymcp/internal/tools"
)

// Handler manages the decompiler resource endpoints.
type Handler struct {
	backend *tools.Backend
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(backend *tools.Backend) *Handler {
	return &Handler{backend: backend}
}

// status is the JSON shape served at ilspy://status.
type status struct {
	DecompilerPath    string `json:"decompiler_path,omitempty"`
	DecompilerVersion string `json:"decompiler_version,omitempty"`
	Available         bool   `json:"available"`
	MaxFiles          int    `json:"max_files"`
	MaxBytes          int64  `json:"max_bytes"`
	Concurrency       int    `json:"concurrency"`
	TimeoutSeconds    int    `json:"timeout_seconds"`
	CacheEnabled      bool   `json:"cache_enabled"`
	CacheEntries      int    `json:"cache_entries"`
}

// StatusResource returns the MCP resource definition for server status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"ilspy://status",
		"Decompiler Status",
		mcp.WithResourceDescription("Resolved decompiler binary, configured limits, and cache statistics"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the current server status as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	cfg := h.backend.Cfg
	st := status{
		Available:      h.backend.Runner != nil,
		MaxFiles:       cfg.MaxFiles,
		MaxBytes:       cfg.MaxBytes,
		Concurrency:    cfg.Concurrency,
		TimeoutSeconds: cfg.TimeoutSeconds,
		CacheEnabled:   h.backend.Cache != nil,
	}
	if h.backend.Runner != nil {
		info := h.backend.Runner.Info()
		st.DecompilerPath = info.Path
		st.DecompilerVersion = info.Version
	}
	if h.backend.Cache != nil {
		if n, err := h.backend.Cache.Len(); err == nil {
			st.CacheEntries = n
		}
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
