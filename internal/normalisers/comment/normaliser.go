package comment

import (
	"github.com/custodia-labs/rcingest/internal/core/domain"
	"github.com/custodia-labs/rcingest/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser maps raw comment records onto the comments table.
type Normaliser struct {
	schema domain.TableSchema
}

// New creates a new comment normaliser.
func New() *Normaliser {
	return &Normaliser{schema: domain.CommentsSchema()}
}

// Schema returns the comments table schema.
func (n *Normaliser) Schema() domain.TableSchema {
	return n.schema
}

// Normalise derives one comment row from raw.
func (n *Normaliser) Normalise(raw domain.RawRecord) (domain.Comment, error) {
	if raw == nil {
		return domain.Comment{}, domain.ErrInvalidInput
	}

	f := &fieldReader{raw: raw}
	c := domain.Comment{
		Author:           f.text("author"),
		Body:             f.text("body"),
		CreatedUTC:       f.integer("created_utc"),
		Archived:         f.boolean("archived"),
		Controversiality: f.integer("controversiality"),
		ID:               f.text("id"),
		LinkID:           f.text("link_id"),
		Locked:           f.boolean("locked"),
		IsSubmitter:      f.boolean("is_submitter"),
		ParentID:         f.text("parent_id"),
		Score:            f.integer("score"),
		SubredditID:      f.text("subreddit_id"),
		Subreddit:        f.text("subreddit"),
		Stickied:         f.boolean("stickied"),
		Permalink:        f.text("permalink"),
	}
	if f.err != nil {
		return domain.Comment{}, f.err
	}

	c.NumSentences = CountSentences(c.Body)
	c.Edited = IsEdited(raw)
	c.RemovalType = ClassifyRemoval(raw)
	c.Collapsed = ClassifyCollapsed(raw)
	c.Distinguished = ClassifyDistinguished(raw)
	c.SubredditType = ClassifySubredditType(raw)

	return c, nil
}
