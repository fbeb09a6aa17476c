package repo

import (
	"time"

	"github.com/2beens/workoutlog/internal/workouts"
)

type User struct {
	ID        int
	VKUserID  int64
	FirstName string
	LastName  string
	AvatarURL string
}

type Exercise struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	Notes  string  `json:"notes"`
}

type Workout struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Date          workouts.Date `json:"date"`
	ExerciseCount int           `json:"exercise_count"`
	Exercises     []Exercise    `json:"exercises"`
	CreatedAt     time.Time     `json:"-"`
	UpdatedAt     time.Time     `json:"-"`
}

// SaveParams is a full replacement of the user's workout on Date.
type SaveParams struct {
	Name      string
	Date      workouts.Date
	Exercises []Exercise
}
