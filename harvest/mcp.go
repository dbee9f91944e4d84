package harvest

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/revq/kit"
)

type harvestReq struct {
	URL   string `json:"url"`
	Limit int    `json:"limit,omitempty"`
}

// RegisterMCP registers the harvest tool on an MCP server.
func (h *Harvester) RegisterMCP(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "revq_harvest",
		Description: "Extract buyer reviews from a marketplace profile page.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url":   map[string]any{"type": "string", "description": "Profile page URL"},
				"limit": map[string]any{"type": "integer", "description": "Maximum reviews to return"},
			},
			"required": []string{"url"},
		},
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*harvestReq)
		return h.Run(ctx, r.URL, r.Limit)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r harvestReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
