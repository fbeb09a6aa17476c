//go:build integration_test || all_tests

package test

import (
	"context"
	"strings"

	"github.com/2beens/workoutlog/internal/identity"
	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestMCP_ToolsOverHTTP() {
	ctx := context.Background()
	t := s.T()

	session, _ := s.newSession(ctx, "vk_user_id=1005")
	ctrl := session.Controller()
	ctrl.SelectDate(workouts.NewDate(2024, 8, 20))
	require.NoError(t, ctrl.RenameWorkout("Mobility"))
	require.NoError(t, ctrl.Save(ctx))

	client := mcp.NewClient(&mcp.Implementation{Name: "suite", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   serverEndpoint + "/mcp",
		HTTPClient: s.httpClient,
	}, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_workout_for_date",
		Arguments: map[string]any{"vk_user_id": 1005, "date": "2024-08-20"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	text := res.Content[0].(*mcp.TextContent).Text
	assert.True(t, strings.Contains(text, `"name": "Mobility"`), text)

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "list_recent_workouts",
		Arguments: map[string]any{"vk_user_id": identity.DemoUser().ID + 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "no workouts logged by this user", res.Content[0].(*mcp.TextContent).Text)

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{Name: "get_workouts_schema"})
	require.NoError(t, err)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "## workouts")
}
