// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for ingestion to run:
//
//   - ArchiveOpener / ArchiveReader: Streams records out of a compressed archive
//   - Normaliser: Maps a raw record onto the fixed comment schema
//   - RecordStore: Single-file relational store (SQLite)
//   - WarningLogOpener / WarningLog: Per-call diagnostics file
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ProgressReporter: Observes progress; nil reports nothing.
//   - Ledger: Processed-archive list; only the driver needs it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
