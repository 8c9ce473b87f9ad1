package mcp

import (
	"github.com/custodia-labs/rcingest/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Query runs read-only SQL and lists tables.
	Query driving.QueryService

	// Archives exposes the processed-archive ledger. Optional.
	Archives driving.ArchiveDriver
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
