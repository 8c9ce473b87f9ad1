package domain

// Comment is a normalised comment row.
type Comment struct {
	// Derived fields.
	NumSentences  int
	Edited        bool
	RemovalType   RemovalType
	Collapsed     Collapsed
	Distinguished Distinguished
	SubredditType SubredditType

	// Literal fields copied from the archive.
	Author           string
	Body             string
	CreatedUTC       int64
	Archived         bool
	Controversiality int64
	ID               string
	LinkID           string
	Locked           bool
	IsSubmitter      bool
	ParentID         string
	Score            int64
	SubredditID      string
	Subreddit        string
	Stickied         bool
	Permalink        string
}

// Values returns the row in CommentsSchema column order.
// Categorical fields are returned as their integer codes.
func (c *Comment) Values() []any {
	return []any{
		int64(c.NumSentences),
		c.Edited,
		int64(c.RemovalType),
		int64(c.Collapsed),
		int64(c.Distinguished),
		int64(c.SubredditType),

		c.Author,
		c.Body,
		c.CreatedUTC,
		c.Archived,
		c.Controversiality,
		c.ID,
		c.LinkID,
		c.Locked,
		c.IsSubmitter,
		c.ParentID,
		c.Score,
		c.SubredditID,
		c.Subreddit,
		c.Stickied,
		c.Permalink,
	}
}
