package mcp

import (
	"github.com/2beens/workoutlog/internal/workouts/repo"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing read only workout tools.
// Mounted at /mcp by the backend and served over stdio by cmd/workouts_mcp.
func NewServer(pool *pgxpool.Pool, workoutsRepo *repo.Repo, listLimit int) *mcp.Server {
	svc := NewContextService(NewPoolSchemaRepo(pool), workoutsRepo, listLimit)
	return newServer(NewHandler(svc))
}

func newServer(h *Handler) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "workouts-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workouts_schema",
		Description: "Returns the DB schema of the workout log tables (users, workouts, exercises): columns, types, nullable, default.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_for_date",
		Description: "Returns the workout a VK user logged on the given day, with all its exercises in order. Args: vk_user_id, date (YYYY-MM-DD).",
	}, h.GetWorkoutForDateTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_recent_workouts",
		Description: "Returns the most recent workouts of a VK user, newest first. Args: vk_user_id; optional: limit.",
	}, h.ListRecentWorkoutsTool())

	return s
}
