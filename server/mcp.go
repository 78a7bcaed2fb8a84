package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"study_notes_generator/pipeline"
)

type generateToolReq struct {
	Topic string `json:"topic"`
}

// RegisterMCP exposes the notes pipeline as an MCP tool on srv.
func (s *Server) RegisterMCP(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "generate_study_notes",
		Description: "Validate an educational topic, generate structured study notes for it and render them as a PDF.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{"type": "string", "description": "Subject to write study notes about"},
			},
			"required": []string{"topic"},
		},
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in generateToolReq
		if err := json.Unmarshal(req.Params.Arguments, &in); err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}

		result, err := s.pipe.Run(ctx, in.Topic)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(pipeline.Message(err)))
			return &res, nil
		}

		data, err := json.Marshal(s.response(result, s.baseURL(nil)))
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}
