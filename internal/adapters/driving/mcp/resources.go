package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the URI scheme for rcingest resources.
const uriScheme = "rcingest://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "schema",
		Name:        "schema",
		Description: "CREATE TABLE statements of every table in the store",
		MIMEType:    "text/plain",
	}, s.handleSchemaResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "tables/{table}",
		Name:        "table-schema",
		Description: "CREATE TABLE statement of one table",
		MIMEType:    "text/plain",
	}, s.handleTableResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "processed",
		Name:        "processed",
		Description: "Archives already ingested into the store",
		MIMEType:    "application/json",
	}, s.handleProcessedResource)
}

// handleSchemaResource returns the DDL of every table.
func (s *Server) handleSchemaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	tables, err := s.ports.Query.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	statements := make([]string, len(tables))
	for i, t := range tables {
		statements[i] = t.SQL + ";"
	}

	return textResult(req.Params.URI, "text/plain", strings.Join(statements, "\n\n")), nil
}

// handleTableResource returns the DDL of the table named in the URI.
func (s *Server) handleTableResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractTableName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tables, err := s.ports.Query.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	for _, t := range tables {
		if t.Name == name {
			return textResult(req.Params.URI, "text/plain", t.SQL+";"), nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// handleProcessedResource returns the ledger as a JSON array.
func (s *Server) handleProcessedResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names := []string{}
	if s.ports.Archives != nil {
		listed, err := s.ports.Archives.Processed()
		if err != nil {
			return nil, fmt.Errorf("reading ledger: %w", err)
		}
		names = append(names, listed...)
	}

	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling ledger: %w", err)
	}
	return textResult(req.Params.URI, "application/json", string(data)), nil
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// extractTableName extracts the table from a URI like rcingest://tables/{table}.
func extractTableName(uri string) string {
	const prefix = uriScheme + "tables/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
