package driven

import "github.com/custodia-labs/rcingest/internal/core/domain"

// Normaliser maps a raw record onto the fixed comment schema.
// Implementations are pure and safe for concurrent use.
type Normaliser interface {
	// Schema returns the table the normalised rows are stored in.
	Schema() domain.TableSchema

	// Normalise derives the typed row for one record.
	// A missing or wrongly typed required field returns an error wrapping
	// domain.ErrMissingField or domain.ErrInvalidField. Unrecognised
	// categorical values are not errors; they become the ERROR code.
	Normalise(raw domain.RawRecord) (domain.Comment, error)
}
