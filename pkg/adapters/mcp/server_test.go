package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/domain"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	store := memory.NewFromFiles(map[string]string{
		"journal/daily.md": `Day <% include "shared/footer" %>`,
		"shared/footer.md": `(<% title %>)`,
		"loop.md":          `<% include "loop" %>`,
	})
	eng, err := scribe.New("", scribe.WithStore(store))
	require.NoError(t, err)
	return NewServer(eng)
}

func TestExpandDocument(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleExpandDocument(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"path": "daily",
	})
	require.NoError(t, err)
	assert.Equal(t, "Day (footer)", resp.Output)
	assert.Equal(t, "top_level", resp.Mode)
}

func TestExpandDocument_Errors(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	_, err := s.handleExpandDocument(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)

	_, err = s.handleExpandDocument(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"path": "daily", "mode": "nope",
	})
	assert.Error(t, err)

	_, err = s.handleExpandDocument(ctx, mcp.CallToolRequest{}, map[string]interface{}{"path": "loop"})
	assert.True(t, errors.Is(err, domain.ErrDepthLimitExceeded), "got %v", err)
}

func TestExpandText(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleExpandText(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"text": `<% folder %>/<% title %>`,
		"path": "journal/daily.md",
		"mode": "internal",
	})
	require.NoError(t, err)
	assert.Equal(t, "journal/daily", resp.Output)
	assert.Equal(t, "internal", resp.Mode)

	_, err = s.handleExpandText(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestDocumentsResource(t *testing.T) {
	s := newServer(t)

	contents, err := s.handleDocuments(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, DocumentsURI, text.URI)

	var notes []domain.Note
	require.NoError(t, json.Unmarshal([]byte(text.Text), &notes))
	assert.Len(t, notes, 3)
}
