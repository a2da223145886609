package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/ndtm/internal/service"
	"github.com/aretw0/ndtm/internal/testutils"
	"github.com/aretw0/ndtm/internal/validator"
	"github.com/aretw0/ndtm/pkg/adapters/memory"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := memory.NewStoreFrom(map[string]string{"fork": testutils.TwoTapeFork})
	return NewServer(service.New(store), nil)
}

func TestSimulate_InlineProgram(t *testing.T) {
	s := newTestServer(t)

	rep, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"program":  testutils.Palindrome,
		"input":    "ab",
		"optimize": true,
	})
	require.NoError(t, err)

	assert.Equal(t, "ab", rep.Input)
	assert.True(t, rep.Optimize)
	require.Len(t, rep.Outputs, 1)
	assert.Equal(t, domain.Yes, rep.Outputs[0].Classification)
}

func TestSimulate_StoredProgram(t *testing.T) {
	s := newTestServer(t)

	rep, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"name": "fork",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.TapeCount)
	assert.Len(t, rep.Outputs, 2)
}

func TestSimulate_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.ErrorIs(t, err, service.ErrNoProgram)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"program": "\ns; (>); (q, >, L)\n"})
	assert.ErrorIs(t, err, domain.ErrTapeOrigin)
}

func TestFormatProgram(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleFormat(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"program": "\n#c\ns;(>);(Y,>,-)\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "\ns; (>); (Y, >, -)\n", resp.Program)

	_, err = s.handleFormat(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestProgramGraph(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleGraph(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"name": "fork"})
	require.NoError(t, err)
	assert.Contains(t, resp.Mermaid, "graph TD")

	_, err = s.handleGraph(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"name": "missing"})
	assert.Error(t, err)
}

func TestValidateProgram(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"name": "fork"})
	require.NoError(t, err)
	assert.Empty(t, resp.Findings)
	assert.NotNil(t, resp.Findings)

	resp, err = s.handleValidate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"program": "\ns; (>); (gone, >, R)\n",
	})
	require.NoError(t, err)
	require.Len(t, resp.Findings, 1)
	assert.Equal(t, validator.DeadEnd, resp.Findings[0].Kind)
}

func TestReadPrograms(t *testing.T) {
	s := newTestServer(t)

	contents, err := s.readPrograms(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, ProgramsURI, text.URI)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(text.Text), &names))
	assert.Equal(t, []string{"fork"}, names)
}
