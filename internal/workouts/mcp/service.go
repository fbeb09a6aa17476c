package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/workoutlog/internal/workouts"
	"github.com/2beens/workoutlog/internal/workouts/repo"
)

var ErrUnknownUser = errors.New("no workouts logged by this user")

// WorkoutsRepo is the read side of the workouts repo.
type WorkoutsRepo interface {
	UserID(ctx context.Context, vkUserID int64) (int, error)
	GetByDate(ctx context.Context, userID int, date workouts.Date) (*repo.Workout, error)
	ListRecent(ctx context.Context, userID, limit int) ([]repo.Workout, error)
}

type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetWorkoutForDate(ctx context.Context, vkUserID int64, date workouts.Date) (*repo.Workout, error)
	ListRecentWorkouts(ctx context.Context, vkUserID int64, limit int) ([]repo.Workout, error)
}

type ContextService struct {
	schema    SchemaRepo
	workouts  WorkoutsRepo
	listLimit int
}

// NewContextService builds the service; listLimit caps list_recent_workouts.
func NewContextService(schemaRepo SchemaRepo, workoutsRepo WorkoutsRepo, listLimit int) *ContextService {
	if listLimit <= 0 {
		listLimit = 50
	}
	return &ContextService{
		schema:    schemaRepo,
		workouts:  workoutsRepo,
		listLimit: listLimit,
	}
}

func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetWorkoutColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

// GetWorkoutForDate returns nil, nil when the user has nothing on that day.
func (s *ContextService) GetWorkoutForDate(ctx context.Context, vkUserID int64, date workouts.Date) (*repo.Workout, error) {
	userID, err := s.userID(ctx, vkUserID)
	if err != nil {
		return nil, err
	}
	w, err := s.workouts.GetByDate(ctx, userID, date)
	if errors.Is(err, repo.ErrWorkoutNotFound) {
		return nil, nil
	}
	return w, err
}

func (s *ContextService) ListRecentWorkouts(ctx context.Context, vkUserID int64, limit int) ([]repo.Workout, error) {
	userID, err := s.userID(ctx, vkUserID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.listLimit {
		limit = s.listLimit
	}
	return s.workouts.ListRecent(ctx, userID, limit)
}

func (s *ContextService) userID(ctx context.Context, vkUserID int64) (int, error) {
	id, err := s.workouts.UserID(ctx, vkUserID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return 0, ErrUnknownUser
	}
	if err != nil {
		return 0, fmt.Errorf("lookup user %d: %w", vkUserID, err)
	}
	return id, nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "No workout tables found."
	}

	var b strings.Builder
	current := ""
	for _, c := range cols {
		if c.TableName != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = c.TableName
			fmt.Fprintf(&b, "## %s\n| column | type | nullable | default |\n|---|---|---|---|\n", current)
		}
		def := ""
		if c.ColumnDef != nil {
			def = *c.ColumnDef
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
	}
	return b.String()
}
