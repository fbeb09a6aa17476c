package repo

import (
	"fmt"
	"time"

	"github.com/2beens/workoutlog/internal/workouts"
)

// dateScanner scans a postgres DATE into workouts.Date.
type dateScanner struct {
	d *workouts.Date
}

func (s dateScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*s.d = workouts.DateOf(v)
		return nil
	case string:
		d, err := workouts.ParseDate(v)
		if err != nil {
			return err
		}
		*s.d = d
		return nil
	case nil:
		return fmt.Errorf("workout date is null")
	default:
		return fmt.Errorf("unsupported date type: %T", src)
	}
}
