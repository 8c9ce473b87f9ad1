package domain

// CodeError is the stored code for a categorical value that matched none of
// its expected cases. It is shared by every categorical field.
const CodeError = -1

const errorName = "ERROR"

// RemovalType records whether and how a comment was removed.
type RemovalType int

// Removal types.
const (
	// RemovalNone means the comment was not removed.
	RemovalNone RemovalType = 0

	// RemovalDeleted means the comment was deleted by its author.
	RemovalDeleted RemovalType = 1

	// RemovalRemoved means the comment was removed by a moderator.
	RemovalRemoved RemovalType = 2

	// RemovalReddit means the comment was removed by the platform.
	RemovalReddit RemovalType = 3

	// RemovalLegal means the comment carries a legal removal reason.
	RemovalLegal RemovalType = 4

	// RemovalError means the upstream value was not recognised.
	RemovalError RemovalType = CodeError
)

// String returns the name of the removal type.
func (t RemovalType) String() string {
	switch t {
	case RemovalNone:
		return "none"
	case RemovalDeleted:
		return "deleted"
	case RemovalRemoved:
		return "removed"
	case RemovalReddit:
		return "reddit"
	case RemovalLegal:
		return "legal"
	default:
		return errorName
	}
}

// Collapsed records why a comment was collapsed in the thread view.
type Collapsed int

// Collapse states.
const (
	// CollapsedNone means the comment is not collapsed.
	CollapsedNone Collapsed = 0

	// CollapsedScore means the comment score fell below the threshold.
	CollapsedScore Collapsed = 1

	// CollapsedDeleted means the comment was collapsed because it was deleted.
	CollapsedDeleted Collapsed = 2

	// CollapsedUnknown means the comment is collapsed with no reason given.
	CollapsedUnknown Collapsed = 3

	// CollapsedError means the upstream reason was not recognised.
	CollapsedError Collapsed = CodeError
)

// String returns the name of the collapse state.
func (c Collapsed) String() string {
	switch c {
	case CollapsedNone:
		return "none"
	case CollapsedScore:
		return "score"
	case CollapsedDeleted:
		return "deleted"
	case CollapsedUnknown:
		return "unknown"
	default:
		return errorName
	}
}

// Distinguished records the role an author posted with.
type Distinguished int

// Distinguished roles.
const (
	DistinguishedUser      Distinguished = 0
	DistinguishedModerator Distinguished = 1
	DistinguishedAdmin     Distinguished = 2
	DistinguishedError     Distinguished = CodeError
)

// String returns the name of the role.
func (d Distinguished) String() string {
	switch d {
	case DistinguishedUser:
		return "user"
	case DistinguishedModerator:
		return "moderator"
	case DistinguishedAdmin:
		return "admin"
	default:
		return errorName
	}
}

// SubredditType records the visibility of the community a comment was posted in.
type SubredditType int

// Subreddit types.
const (
	SubredditPublic     SubredditType = 0
	SubredditRestricted SubredditType = 1
	SubredditUser       SubredditType = 2
	SubredditArchived   SubredditType = 3
	SubredditError      SubredditType = CodeError
)

// String returns the name of the subreddit type.
func (s SubredditType) String() string {
	switch s {
	case SubredditPublic:
		return "public"
	case SubredditRestricted:
		return "restricted"
	case SubredditUser:
		return "user"
	case SubredditArchived:
		return "archived"
	default:
		return errorName
	}
}
