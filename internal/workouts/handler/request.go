package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/2beens/workoutlog/internal/workouts"
	"github.com/2beens/workoutlog/internal/workouts/repo"
)

var errDateRequired = errors.New("workout date is required")

type saveRequest struct {
	Name      *string           `json:"name"`
	Date      string            `json:"date"`
	Exercises []exerciseRequest `json:"exercises"`
}

// exerciseRequest fields accept numbers sent as strings, as form inputs do.
type exerciseRequest struct {
	Name   string     `json:"name"`
	Sets   flexNumber `json:"sets"`
	Reps   flexNumber `json:"reps"`
	Weight flexNumber `json:"weight"`
	Notes  string     `json:"notes"`
}

func (req saveRequest) toSaveParams() (repo.SaveParams, error) {
	if strings.TrimSpace(req.Date) == "" {
		return repo.SaveParams{}, errDateRequired
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		return repo.SaveParams{}, fmt.Errorf("invalid date: %s", req.Date)
	}

	name := workouts.DefaultWorkoutName
	if req.Name != nil {
		name = *req.Name
	}

	exercises := make([]repo.Exercise, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		exercises = append(exercises, repo.Exercise{
			Name:   e.Name,
			Sets:   e.Sets.Int(),
			Reps:   e.Reps.Int(),
			Weight: e.Weight.Float(),
			Notes:  e.Notes,
		})
	}

	return repo.SaveParams{
		Name:      name,
		Date:      date,
		Exercises: exercises,
	}, nil
}

// Column limits of exercises.sets/reps (integer) and weight (numeric(8,2)).
const (
	maxStoredCount  = math.MaxInt32
	maxStoredWeight = 999999.99
)

// flexNumber is a non-negative number read leniently: JSON numbers and
// strings alike, "12abc" counts as 12, anything without a leading number
// is zero.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	*n = flexNumber(workouts.CoerceFloat(raw))
	return nil
}

// Int truncates to a whole number, clamped to what the column holds.
func (n flexNumber) Int() int {
	if float64(n) >= maxStoredCount {
		return maxStoredCount
	}
	return int(n)
}

// Float clamps to what the weight column holds.
func (n flexNumber) Float() float64 {
	return math.Min(float64(n), maxStoredWeight)
}
