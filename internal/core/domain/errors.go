package domain

import "errors"

// Domain errors represent ingestion failures.
// These are distinct from infrastructure errors, which adapters wrap with them.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion Errors.

	// ErrDecode indicates the decompressed stream could not be decoded as text
	// within the retry window, or the compressed stream itself is corrupt.
	// Fatal to the current archive.
	ErrDecode = errors.New("decode error")

	// ErrMissingField indicates a required record field is absent or null.
	// The record is rejected; the archive continues.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField indicates a required record field has the wrong type.
	// The record is rejected; the archive continues.
	ErrInvalidField = errors.New("invalid field value")

	// ErrIngestInProgress indicates an ingest call is already running on the store.
	ErrIngestInProgress = errors.New("ingest in progress")

	// ErrAlreadyIngested indicates the archive is listed in the ledger.
	ErrAlreadyIngested = errors.New("archive already ingested")

	// Storage Errors.

	// ErrWriteRejected indicates a write was attempted on a read-only store.
	// The store remains usable for queries.
	ErrWriteRejected = errors.New("store is read-only")

	// ErrStorageIO indicates a backup, flush or schema operation failed.
	// Fatal to the current archive.
	ErrStorageIO = errors.New("storage I/O error")
)
