package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler turns tool input into service calls and service output into tool results.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

type WorkoutForDateInput struct {
	VKUserID int64  `json:"vk_user_id" jsonschema:"VK user id of the workout owner"`
	Date     string `json:"date" jsonschema:"Workout day (YYYY-MM-DD)"`
}

func (h *Handler) GetWorkoutForDateTool() func(context.Context, *mcp.CallToolRequest, WorkoutForDateInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutForDateInput) (*mcp.CallToolResult, any, error) {
		if in.VKUserID <= 0 {
			return errorResult("Invalid vk_user_id"), nil, nil
		}
		date, err := workouts.ParseDate(in.Date)
		if err != nil {
			return errorResult("Invalid date: use YYYY-MM-DD"), nil, nil
		}

		w, err := h.service.GetWorkoutForDate(ctx, in.VKUserID, date)
		if err != nil {
			return serviceErrorResult("Error getting workout", err), nil, nil
		}
		if w == nil {
			return textResult("No workout logged on " + date.String()), nil, nil
		}
		return jsonResult(w), nil, nil
	}
}

type RecentWorkoutsInput struct {
	VKUserID int64 `json:"vk_user_id" jsonschema:"VK user id of the workout owner"`
	Limit    int   `json:"limit,omitempty" jsonschema:"Max number of workouts to return"`
}

func (h *Handler) ListRecentWorkoutsTool() func(context.Context, *mcp.CallToolRequest, RecentWorkoutsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RecentWorkoutsInput) (*mcp.CallToolResult, any, error) {
		if in.VKUserID <= 0 {
			return errorResult("Invalid vk_user_id"), nil, nil
		}
		list, err := h.service.ListRecentWorkouts(ctx, in.VKUserID, in.Limit)
		if err != nil {
			return serviceErrorResult("Error listing workouts", err), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

func serviceErrorResult(prefix string, err error) *mcp.CallToolResult {
	if errors.Is(err, ErrUnknownUser) {
		return textResult(ErrUnknownUser.Error())
	}
	return errorResult(prefix + ": " + err.Error())
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
