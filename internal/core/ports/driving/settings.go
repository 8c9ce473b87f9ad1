package driving

import "github.com/custodia-labs/rcingest/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings merged over the defaults.
	Get() (*domain.Settings, error)

	// Set parses value for key and persists it.
	// Unknown keys and unparsable values return domain.ErrInvalidInput.
	Set(key, value string) error

	// Keys returns every recognised key in display order.
	Keys() []string

	// Value returns the effective value of key rendered as text.
	Value(key string) (string, error)
}
