package cli

import (
	"fmt"
	"strconv"

	"github.com/2beens/workoutlog/internal/workouts"
)

func resolveDate(dateFlag string) (workouts.Date, error) {
	if dateFlag == "" {
		return workouts.Today(), nil
	}
	return workouts.ParseDate(dateFlag)
}

// exerciseAt maps the 1-based position shown by "show" to the exercise id.
func exerciseAt(c *workouts.Controller, position string) (string, error) {
	n, err := strconv.Atoi(position)
	if err != nil {
		return "", fmt.Errorf("exercise position %q is not a number", position)
	}
	w, ok := c.Current()
	if !ok {
		return "", workouts.ErrNotEditing
	}
	if n < 1 || n > len(w.Exercises) {
		return "", fmt.Errorf("exercise %d: %w", n, workouts.ErrExerciseNotFound)
	}
	return w.Exercises[n-1].ID, nil
}
