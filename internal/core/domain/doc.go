// Package domain defines the core entities of the comment ingestion pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRecord: A dynamic field map decoded from one archive line
//   - Comment: A normalised, fixed-schema row
//   - TableSchema: Column definitions for the relational store
//   - Batch: A columnar buffer flushed as one transaction
//   - Progress, ReadStats, IngestSummary: Ingestion accounting
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
