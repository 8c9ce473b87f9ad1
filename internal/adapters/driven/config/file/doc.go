// Package file provides the TOML configuration store.
//
// Keys are flat dot-notation strings in memory ("ingest.batch_size") and
// nested tables on disk:
//
//	[ingest]
//	batch_size = 100000
package file
