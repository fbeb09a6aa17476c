package workouts

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrUnknownField     = errors.New("unknown exercise field")
)

// Exercise fields accepted by UpdateExercise.
const (
	FieldName   = "name"
	FieldSets   = "sets"
	FieldReps   = "reps"
	FieldWeight = "weight"
	FieldNotes  = "notes"
)

// AddExercise appends an empty exercise to the open draft.
func (c *Controller) AddExercise() (Exercise, error) {
	draft, err := c.draft()
	if err != nil {
		return Exercise{}, err
	}

	ex := Exercise{ID: c.ids.NewID()}
	draft.Exercises = append(draft.Exercises, ex)
	return ex, nil
}

// UpdateExercise sets a single field of an exercise. Numeric fields take
// whatever the user typed: anything that is not a non-negative number
// becomes zero.
func (c *Controller) UpdateExercise(id, field, value string) error {
	draft, err := c.draft()
	if err != nil {
		return err
	}

	idx := draft.exerciseIndex(id)
	if idx < 0 {
		return fmt.Errorf("update %s: %w", id, ErrExerciseNotFound)
	}

	ex := &draft.Exercises[idx]
	switch strings.ToLower(field) {
	case FieldName:
		ex.Name = value
	case FieldSets:
		ex.Sets = CoerceInt(value)
	case FieldReps:
		ex.Reps = CoerceInt(value)
	case FieldWeight:
		ex.Weight = CoerceFloat(value)
	case FieldNotes:
		ex.Notes = value
	default:
		return fmt.Errorf("update %s [%s]: %w", id, field, ErrUnknownField)
	}
	return nil
}

// DeleteExercise removes an exercise, keeping the order of the rest.
func (c *Controller) DeleteExercise(id string) error {
	draft, err := c.draft()
	if err != nil {
		return err
	}

	idx := draft.exerciseIndex(id)
	if idx < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrExerciseNotFound)
	}

	exercises := make([]Exercise, 0, len(draft.Exercises)-1)
	exercises = append(exercises, draft.Exercises[:idx]...)
	exercises = append(exercises, draft.Exercises[idx+1:]...)
	draft.Exercises = exercises
	return nil
}

func (c *Controller) RenameWorkout(name string) error {
	draft, err := c.draft()
	if err != nil {
		return err
	}
	draft.Name = name
	return nil
}

// CanCopyPrevious reports whether there is an earlier workout to copy from.
func (c *Controller) CanCopyPrevious() bool {
	if c.state != StateEditing {
		return false
	}
	_, ok := c.store.LookupPreviousBefore(c.selectedDate)
	return ok
}

// CopyPreviousWorkout replaces the draft's name and exercises with those of
// the latest workout before the selected date. Copied exercises get new
// identifiers. Returns false if there was nothing to copy.
func (c *Controller) CopyPreviousWorkout() (bool, error) {
	draft, err := c.draft()
	if err != nil {
		return false, err
	}

	prev, ok := c.store.LookupPreviousBefore(c.selectedDate)
	if !ok {
		return false, nil
	}

	exercises := make([]Exercise, len(prev.Exercises))
	for i, ex := range prev.Exercises {
		ex.ID = c.ids.NewID()
		exercises[i] = ex
	}
	draft.Name = prev.Name
	draft.Exercises = exercises
	return true, nil
}

// CoerceInt reads the leading decimal integer of value, the way a browser
// parseInt does: "12abc" is 12, "12.7" is 12, "1e3" is 1. Missing or
// negative numbers are 0, values past int range saturate at math.MaxInt.
func CoerceInt(value string) int {
	num := numericPrefix(value, false)
	if num == "" || num[0] == '-' {
		return 0
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		// only a range error gets here
		return math.MaxInt
	}
	return n
}

// CoerceFloat reads the leading decimal number of value, like parseFloat,
// with a comma accepted as the decimal separator: "20,5kg" is 20.5.
// Hex, NaN and Infinity are not numbers here. Missing or negative numbers
// are 0, overflow saturates at math.MaxFloat64.
func CoerceFloat(value string) float64 {
	num := numericPrefix(strings.ReplaceAll(value, ",", "."), true)
	if num == "" {
		return 0
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0
	}
	switch {
	case f <= 0:
		return 0
	case math.IsInf(f, 1):
		return math.MaxFloat64
	}
	return f
}

// numericPrefix returns the leading [sign]digits[.digits][e[sign]digits]
// part of s after leading white space, or "" when s does not start with a
// number. Without fraction only the integer part is taken.
func numericPrefix(s string, fraction bool) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intEnd := skipDigits(s, i)
	hasInt := intEnd > i
	i = intEnd

	if !fraction {
		if !hasInt {
			return ""
		}
		return s[:i]
	}

	hasFrac := false
	if i < len(s) && s[i] == '.' {
		fracEnd := skipDigits(s, i+1)
		hasFrac = fracEnd > i+1
		if hasInt || hasFrac {
			i = fracEnd
		}
	}
	if !hasInt && !hasFrac {
		return ""
	}

	// the exponent counts only when digits follow it
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if expEnd := skipDigits(s, j); expEnd > j {
			i = expEnd
		}
	}
	return s[:i]
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
