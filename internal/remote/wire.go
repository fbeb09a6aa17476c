package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/2beens/workoutlog/internal/workouts"
)

// flexID accepts an identifier sent either as a JSON number or string.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

type wireExercise struct {
	ID     flexID  `json:"id"`
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	Notes  string  `json:"notes"`
}

type wireWorkout struct {
	ID        flexID         `json:"id"`
	Name      string         `json:"name"`
	Date      workouts.Date  `json:"date"`
	Exercises []wireExercise `json:"exercises"`
}

func (w wireWorkout) toWorkout() workouts.Workout {
	exercises := make([]workouts.Exercise, 0, len(w.Exercises))
	for i, e := range w.Exercises {
		id := string(e.ID)
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		exercises = append(exercises, workouts.Exercise{
			ID:     id,
			Name:   e.Name,
			Sets:   e.Sets,
			Reps:   e.Reps,
			Weight: e.Weight,
			Notes:  e.Notes,
		})
	}
	// the date is unique per user, good enough as a local identifier
	id := string(w.ID)
	if id == "" {
		id = w.Date.String()
	}
	return workouts.Workout{
		ID:        id,
		Name:      w.Name,
		Date:      w.Date,
		Exercises: exercises,
	}
}

type listResponse struct {
	Workouts []wireWorkout `json:"workouts"`
}

type dateResponse struct {
	Workout *wireWorkout `json:"workout"`
}

type saveResponse struct {
	Success   bool   `json:"success"`
	WorkoutID flexID `json:"workout_id"`
	Error     string `json:"error,omitempty"`
}

// createRequest is the POST body; the server assigns the id.
type createRequest struct {
	Name      string              `json:"name"`
	Date      workouts.Date       `json:"date"`
	Exercises []workouts.Exercise `json:"exercises"`
}

type updateRequest struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Date      workouts.Date       `json:"date"`
	Exercises []workouts.Exercise `json:"exercises"`
}

func exercisesOrEmpty(ex []workouts.Exercise) []workouts.Exercise {
	if ex == nil {
		return []workouts.Exercise{}
	}
	return ex
}
