package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

func TestExtractTableName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid table URI", "rcingest://tables/comments", "comments"},
		{"invalid prefix", "file://tables/comments", ""},
		{"nested path", "rcingest://tables/comments/rows", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTableName(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func schemaQuery() *mockQueryService {
	return &mockQueryService{
		tables: []domain.TableInfo{
			{Name: "comments", SQL: `CREATE TABLE "comments" ("id" TEXT) STRICT`},
			{Name: "extra", SQL: `CREATE TABLE "extra" ("x" INTEGER) STRICT`},
		},
	}
}

func TestServer_handleSchemaResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every table", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: schemaQuery()})
		require.NoError(t, err)

		result, err := server.handleSchemaResource(ctx, makeReadResourceRequest("rcingest://schema"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Contains(t, text, `CREATE TABLE "comments" ("id" TEXT) STRICT;`)
		assert.Contains(t, text, `CREATE TABLE "extra"`)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{err: errors.New("database is locked")}})
		require.NoError(t, err)

		_, err = server.handleSchemaResource(ctx, makeReadResourceRequest("rcingest://schema"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing tables")
	})
}

func TestServer_handleTableResource(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Query: schemaQuery()})
	require.NoError(t, err)

	t.Run("known table", func(t *testing.T) {
		result, err := server.handleTableResource(ctx, makeReadResourceRequest("rcingest://tables/extra"))

		require.NoError(t, err)
		assert.Equal(t, `CREATE TABLE "extra" ("x" INTEGER) STRICT;`, result.Contents[0].Text)
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := server.handleTableResource(ctx, makeReadResourceRequest("rcingest://tables/nope"))
		require.Error(t, err)
	})

	t.Run("invalid URI", func(t *testing.T) {
		_, err := server.handleTableResource(ctx, makeReadResourceRequest("rcingest://other"))
		require.Error(t, err)
	})
}

func TestServer_handleProcessedResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil archive driver returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		result, err := server.handleProcessedResource(ctx, makeReadResourceRequest("rcingest://processed"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists processed archives", func(t *testing.T) {
		archives := &mockArchiveDriver{processed: []string{"RC_2024-06.zst", "RC_2024-07.zst"}}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Archives: archives})
		require.NoError(t, err)

		result, err := server.handleProcessedResource(ctx, makeReadResourceRequest("rcingest://processed"))

		require.NoError(t, err)
		assert.JSONEq(t, `["RC_2024-06.zst","RC_2024-07.zst"]`, result.Contents[0].Text)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("returns error on ledger failure", func(t *testing.T) {
		archives := &mockArchiveDriver{err: errors.New("permission denied")}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Archives: archives})
		require.NoError(t, err)

		_, err = server.handleProcessedResource(ctx, makeReadResourceRequest("rcingest://processed"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading ledger")
	})
}
