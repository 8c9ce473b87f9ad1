package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumCodes(t *testing.T) {
	// Stored codes are part of the on-disk contract.
	assert.Equal(t, 0, int(RemovalNone))
	assert.Equal(t, 4, int(RemovalLegal))
	assert.Equal(t, -1, int(RemovalError))

	assert.Equal(t, 3, int(CollapsedUnknown))
	assert.Equal(t, -1, int(CollapsedError))

	assert.Equal(t, 0, int(DistinguishedUser))
	assert.Equal(t, 1, int(DistinguishedModerator))
	assert.Equal(t, 2, int(DistinguishedAdmin))
	assert.Equal(t, -1, int(DistinguishedError))

	assert.Equal(t, 3, int(SubredditArchived))
	assert.Equal(t, -1, int(SubredditError))
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{ String() string }
		expected string
	}{
		{"removal none", RemovalNone, "none"},
		{"removal deleted", RemovalDeleted, "deleted"},
		{"removal removed", RemovalRemoved, "removed"},
		{"removal reddit", RemovalReddit, "reddit"},
		{"removal legal", RemovalLegal, "legal"},
		{"removal error", RemovalError, "ERROR"},
		{"collapsed none", CollapsedNone, "none"},
		{"collapsed score", CollapsedScore, "score"},
		{"collapsed deleted", CollapsedDeleted, "deleted"},
		{"collapsed unknown", CollapsedUnknown, "unknown"},
		{"collapsed error", CollapsedError, "ERROR"},
		{"distinguished user", DistinguishedUser, "user"},
		{"distinguished moderator", DistinguishedModerator, "moderator"},
		{"distinguished admin", DistinguishedAdmin, "admin"},
		{"distinguished error", DistinguishedError, "ERROR"},
		{"subreddit public", SubredditPublic, "public"},
		{"subreddit restricted", SubredditRestricted, "restricted"},
		{"subreddit user", SubredditUser, "user"},
		{"subreddit archived", SubredditArchived, "archived"},
		{"subreddit error", SubredditError, "ERROR"},
		{"out of range", SubredditType(42), "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}
