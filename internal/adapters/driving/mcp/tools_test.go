package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

func TestServer_handleQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows", func(t *testing.T) {
		query := &mockQueryService{
			result: &domain.ResultSet{
				Columns: []string{"subreddit", "n", "body"},
				Rows: [][]any{
					{"AskReddit", int64(12), []byte("hi")},
					{"golang", int64(3), nil},
				},
			},
		}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{SQL: "SELECT 1"})

		require.NoError(t, err)
		assert.Equal(t, "SELECT 1", query.lastSQL)
		assert.Equal(t, []string{"subreddit", "n", "body"}, output.Columns)
		assert.Equal(t, 2, output.Count)
		assert.False(t, output.Truncated)
		assert.Equal(t, []any{"AskReddit", int64(12), "hi"}, output.Rows[0])
		assert.Nil(t, output.Rows[1][2])
	})

	t.Run("truncates to limit", func(t *testing.T) {
		rows := make([][]any, 5)
		for i := range rows {
			rows[i] = []any{int64(i)}
		}
		query := &mockQueryService{result: &domain.ResultSet{Columns: []string{"i"}, Rows: rows}}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{SQL: "SELECT i", Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, query.lastMax)
		assert.Equal(t, 2, output.Count)
		assert.Len(t, output.Rows, 2)
		assert.True(t, output.Truncated)
	})

	t.Run("default limit applies", func(t *testing.T) {
		rows := make([][]any, defaultRowLimit+1)
		for i := range rows {
			rows[i] = []any{int64(i)}
		}
		query := &mockQueryService{result: &domain.ResultSet{Columns: []string{"i"}, Rows: rows}}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{SQL: "SELECT i"})

		require.NoError(t, err)
		assert.Equal(t, defaultRowLimit, query.lastMax)
		assert.Equal(t, defaultRowLimit, output.Count)
		assert.True(t, output.Truncated)
	})

	t.Run("caps limit", func(t *testing.T) {
		query := &mockQueryService{result: &domain.ResultSet{Columns: []string{"i"}}}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, _, err = server.handleQuery(ctx, nil, QueryInput{SQL: "SELECT i", Limit: maxRowLimit * 10})

		require.NoError(t, err)
		assert.Equal(t, maxRowLimit, query.lastMax)
	})

	t.Run("empty result", func(t *testing.T) {
		query := &mockQueryService{result: &domain.ResultSet{Columns: []string{"x"}}}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{SQL: "SELECT x"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Rows)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		query := &mockQueryService{err: errors.New("attempt to write a readonly database")}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, _, err = server.handleQuery(ctx, nil, QueryInput{SQL: "DELETE FROM comments"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "readonly")
	})
}
