//go:build integration

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/krank/internal/stats"
	"github.com/2beens/krank/internal/strength"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) connectMCP(ctx context.Context, token string) (*mcp.ClientSession, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "krank-integration", Version: "test"}, nil)
	return client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: serverEndpoint + "/mcp",
		HTTPClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: &tokenTransport{token: token, next: http.DefaultTransport},
		},
	}, nil)
}

func toolText(t assert.TestingT, res *mcp.CallToolResult) string {
	if !assert.Len(t, res.Content, 1) {
		return ""
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !assert.True(t, ok) {
		return ""
	}
	return text.Text
}

func (s *IntegrationTestSuite) TestMCP() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	t := s.T()

	token := s.doLogin(ctx, t)
	session, err := s.connectMCP(ctx, token)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 4)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "estimate_one_rep_max",
		Arguments: map[string]any{"weight": 300, "reps": 3, "rpe": 8.5},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	var estimate stats.Estimate
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &estimate))
	assert.Equal(t, 345, estimate.E1RMRounded)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_e1rm_series",
		Arguments: map[string]any{"movement_family": "Deadlift", "is_anchor": true},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	var points []strength.E1RMPoint
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &points))
	require.Len(t, points, 3)
	assert.Equal(t, 294, points[0].E1RM)

	// the session is bound to the logged in lifter
	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_e1rm_series",
		Arguments: map[string]any{"movement_family": "Deadlift", "user_id": "other-lifter"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func (s *IntegrationTestSuite) TestMCP_Unauthorized() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.connectMCP(ctx, "not-a-token")
	s.Error(err)
}
