// Package mcp provides an MCP (Model Context Protocol) server adapter for rcingest.
// It lets AI assistants run read-only SQL against the comment store and
// inspect its schema and ingestion ledger.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
