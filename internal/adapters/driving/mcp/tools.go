package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultRowLimit = 100
	maxRowLimit     = 10_000
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	SQL   string `json:"sql" jsonschema:"a read-only SQL statement against the comments table"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of rows to return (default 100)"`
}

// QueryOutput is the output schema for the query tool.
// Truncated is set when the query produced more than limit rows.
type QueryOutput struct {
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "query",
		Description: "Run a read-only SQL query against the Reddit comments store. " +
			"Read the rcingest://schema resource for the table layout.",
	}, s.handleQuery)
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRowLimit
	}
	limit = min(limit, maxRowLimit)

	result, err := s.ports.Query.QueryLimit(ctx, input.SQL, limit)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Columns:   result.Columns,
		Rows:      make([][]any, len(result.Rows)),
		Count:     len(result.Rows),
		Truncated: result.Truncated,
	}
	for i, row := range result.Rows {
		output.Rows[i] = jsonRow(row)
	}
	return nil, output, nil
}

// jsonRow converts blobs to text so they serialise readably.
func jsonRow(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if b, ok := v.([]byte); ok {
			out[i] = string(b)
			continue
		}
		out[i] = v
	}
	return out
}
