package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

func TestQueryService_Query(t *testing.T) {
	store := newMockRecordStore()
	store.result = &domain.ResultSet{
		Columns: []string{"n"},
		Rows:    [][]any{{int64(3)}},
	}
	service := NewQueryService(store)

	result, err := service.Query(context.Background(), "  SELECT count(*) AS n FROM comments  ")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
	assert.Equal(t, "SELECT count(*) AS n FROM comments", store.query)
	assert.Equal(t, 0, store.queryMax)
}

func TestQueryService_QueryLimit(t *testing.T) {
	store := newMockRecordStore()
	store.result = &domain.ResultSet{Columns: []string{"id"}, Truncated: true}
	service := NewQueryService(store)

	result, err := service.QueryLimit(context.Background(), " SELECT id FROM comments ", 25)

	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Equal(t, "SELECT id FROM comments", store.query)
	assert.Equal(t, 25, store.queryMax)

	_, err = service.QueryLimit(context.Background(), " ", 25)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryService_Query_ReadOnlyStore(t *testing.T) {
	store := newMockRecordStore()
	store.writable = false
	store.result = &domain.ResultSet{Columns: []string{"x"}}
	service := NewQueryService(store)

	_, err := service.Query(context.Background(), "SELECT 1 AS x")

	require.NoError(t, err)
}

func TestQueryService_Query_Empty(t *testing.T) {
	service := NewQueryService(newMockRecordStore())

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := service.Query(context.Background(), q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestQueryService_Query_StoreError(t *testing.T) {
	store := newMockRecordStore()
	store.queryErr = errors.New("no such table: nope")
	service := NewQueryService(store)

	_, err := service.Query(context.Background(), "SELECT * FROM nope")

	assert.ErrorContains(t, err, "no such table")
}

func TestQueryService_Tables(t *testing.T) {
	store := newMockRecordStore()
	store.tables = []domain.TableInfo{{Name: "comments", SQL: "CREATE TABLE comments (...)"}}
	service := NewQueryService(store)

	tables, err := service.Tables(context.Background())

	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "comments", tables[0].Name)
}
