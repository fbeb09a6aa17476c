package workouts_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/stretchr/testify/require"
)

type seqIDs struct {
	prefix string
	n      int
}

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

func mustDate(t *testing.T, s string) workouts.Date {
	t.Helper()
	d, err := workouts.ParseDate(s)
	require.NoError(t, err)
	return d
}

func testWorkout(id string, date workouts.Date, exercises ...workouts.Exercise) workouts.Workout {
	if exercises == nil {
		exercises = []workouts.Exercise{}
	}
	return workouts.Workout{
		ID:        id,
		Name:      "workout " + id,
		Date:      date,
		Exercises: exercises,
	}
}

func dateOn(year int, month time.Month, day int) workouts.Date {
	return workouts.NewDate(year, month, day)
}
