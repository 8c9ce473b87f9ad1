package comment

import "github.com/custodia-labs/rcingest/internal/core/domain"

// Collapse reason codes as they appear upstream.
const (
	reasonCodeLowScore = "LOW_SCORE"
	reasonCodeDeleted  = "DELETED"
)

// ClassifyRemoval derives how a comment was removed.
// A legal removal reason takes precedence over the archive's removal metadata.
func ClassifyRemoval(raw domain.RawRecord) domain.RemovalType {
	if truthy(raw["removal_reason"]) {
		return domain.RemovalLegal
	}

	v, ok := raw.Nested("_meta", "removal_type")
	if !ok {
		return domain.RemovalNone
	}

	switch v {
	case "deleted":
		return domain.RemovalDeleted
	case "removed":
		return domain.RemovalRemoved
	case "removed by reddit":
		return domain.RemovalReddit
	default:
		return domain.RemovalError
	}
}

// ClassifyCollapsed derives why a comment was collapsed.
// Checks run in order: score, deleted, bare collapsed flag, then any
// leftover reason is unrecognised.
func ClassifyCollapsed(raw domain.RawRecord) domain.Collapsed {
	reason := raw["collapsed_reason"]
	code := raw["collapsed_reason_code"]

	switch {
	case truthy(reason) || code == reasonCodeLowScore:
		return domain.CollapsedScore
	case code == reasonCodeDeleted:
		return domain.CollapsedDeleted
	case truthy(raw["collapsed"]):
		return domain.CollapsedUnknown
	case truthy(code) || truthy(reason):
		return domain.CollapsedError
	default:
		return domain.CollapsedNone
	}
}

// ClassifyDistinguished derives the role the author posted with.
// A null or absent value is an ordinary user.
func ClassifyDistinguished(raw domain.RawRecord) domain.Distinguished {
	switch raw["distinguished"] {
	case nil:
		return domain.DistinguishedUser
	case "moderator":
		return domain.DistinguishedModerator
	case "admin":
		return domain.DistinguishedAdmin
	default:
		return domain.DistinguishedError
	}
}

// ClassifySubredditType derives the visibility of the community.
func ClassifySubredditType(raw domain.RawRecord) domain.SubredditType {
	switch raw["subreddit_type"] {
	case "public":
		return domain.SubredditPublic
	case "restricted":
		return domain.SubredditRestricted
	case "user":
		return domain.SubredditUser
	case "archived":
		return domain.SubredditArchived
	default:
		return domain.SubredditError
	}
}

// IsEdited reports whether the comment was edited. Upstream stores false
// for unedited comments and the edit timestamp otherwise.
func IsEdited(raw domain.RawRecord) bool {
	v, ok := raw.Lookup("edited")
	if !ok {
		return false
	}
	_, isBool := v.(bool)
	return !isBool
}
