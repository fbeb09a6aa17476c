package workouts_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_AddThenDeleteRestoresSequence(t *testing.T) {
	c := newTestController(workouts.NewStore())
	c.SelectDate(dateOn(2024, time.June, 10))

	e1, err := c.AddExercise()
	require.NoError(t, err)
	e2, err := c.AddExercise()
	require.NoError(t, err)

	before, _ := c.Current()
	added, err := c.AddExercise()
	require.NoError(t, err)
	assert.Empty(t, added.Name)
	assert.Zero(t, added.Sets)
	assert.Zero(t, added.Reps)
	assert.Zero(t, added.Weight)

	withAdded, _ := c.Current()
	require.Len(t, withAdded.Exercises, 3)
	assert.Equal(t, added.ID, withAdded.Exercises[2].ID, "appended to the end")

	require.NoError(t, c.DeleteExercise(added.ID))
	after, _ := c.Current()
	assert.Equal(t, before.Exercises, after.Exercises)
	assert.Equal(t, e1.ID, after.Exercises[0].ID)
	assert.Equal(t, e2.ID, after.Exercises[1].ID)
}

func TestEditor_DeleteKeepsOrder(t *testing.T) {
	c := newTestController(workouts.NewStore())
	c.SelectDate(dateOn(2024, time.June, 10))

	var ids []string
	for i := 0; i < 4; i++ {
		ex, err := c.AddExercise()
		require.NoError(t, err)
		ids = append(ids, ex.ID)
	}

	require.NoError(t, c.DeleteExercise(ids[1]))
	w, _ := c.Current()
	require.Len(t, w.Exercises, 3)
	assert.Equal(t, ids[0], w.Exercises[0].ID)
	assert.Equal(t, ids[2], w.Exercises[1].ID)
	assert.Equal(t, ids[3], w.Exercises[2].ID)

	assert.ErrorIs(t, c.DeleteExercise("missing"), workouts.ErrExerciseNotFound)
}

func TestEditor_UpdateExercise(t *testing.T) {
	c := newTestController(workouts.NewStore())
	c.SelectDate(dateOn(2024, time.June, 10))
	ex, err := c.AddExercise()
	require.NoError(t, err)

	testCases := []struct {
		name   string
		field  string
		value  string
		expect func(t *testing.T, ex workouts.Exercise)
	}{
		{
			name: "name", field: workouts.FieldName, value: "Жим лёжа",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, "Жим лёжа", ex.Name) },
		},
		{
			name: "notes", field: workouts.FieldNotes, value: "slow negatives",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, "slow negatives", ex.Notes) },
		},
		{
			name: "sets", field: workouts.FieldSets, value: "4",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 4, ex.Sets) },
		},
		{
			name: "sets not a number", field: workouts.FieldSets, value: "four",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 0, ex.Sets) },
		},
		{
			name: "reps with fraction", field: workouts.FieldReps, value: "12.7",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 12, ex.Reps) },
		},
		{
			name: "reps negative", field: workouts.FieldReps, value: "-3",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 0, ex.Reps) },
		},
		{
			name: "reps no upper bound", field: workouts.FieldReps, value: "100000",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 100000, ex.Reps) },
		},
		{
			name: "sets with trailing text", field: workouts.FieldSets, value: "12abc",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 12, ex.Sets) },
		},
		{
			name: "sets with unit", field: workouts.FieldSets, value: " 3 sets",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 3, ex.Sets) },
		},
		{
			name: "sets past int range", field: workouts.FieldSets, value: "99999999999999999999",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, math.MaxInt, ex.Sets) },
		},
		{
			name: "sets exponent is not read", field: workouts.FieldSets, value: "1e300",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 1, ex.Sets) },
		},
		{
			name: "sets hex", field: workouts.FieldSets, value: "0x10",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 0, ex.Sets) },
		},
		{
			name: "weight", field: workouts.FieldWeight, value: "42.5",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 42.5, ex.Weight) },
		},
		{
			name: "weight with comma", field: workouts.FieldWeight, value: "17,5",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 17.5, ex.Weight) },
		},
		{
			name: "weight empty", field: workouts.FieldWeight, value: "",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 0.0, ex.Weight) },
		},
		{
			name: "weight NaN", field: workouts.FieldWeight, value: "NaN",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 0.0, ex.Weight) },
		},
		{
			name: "weight with unit", field: workouts.FieldWeight, value: "20.5kg",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 20.5, ex.Weight) },
		},
		{
			name: "weight comma with unit", field: workouts.FieldWeight, value: "20,5 кг",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 20.5, ex.Weight) },
		},
		{
			name: "weight leading dot", field: workouts.FieldWeight, value: ".5",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 0.5, ex.Weight) },
		},
		{
			name: "weight exponent", field: workouts.FieldWeight, value: "1.5e2x",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 150.0, ex.Weight) },
		},
		{
			name: "weight dangling exponent", field: workouts.FieldWeight, value: "7e",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 7.0, ex.Weight) },
		},
		{
			name: "weight hex", field: workouts.FieldWeight, value: "0x1p4",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 0.0, ex.Weight) },
		},
		{
			name: "weight infinity", field: workouts.FieldWeight, value: "Infinity",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 0.0, ex.Weight) },
		},
		{
			name: "weight overflow", field: workouts.FieldWeight, value: "1e400",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, math.MaxFloat64, ex.Weight) },
		},
		{
			name: "weight negative", field: workouts.FieldWeight, value: "-2.5",
			expect: func(t *testing.T, ex workouts.Exercise) { assert.Equal(t, 0.0, ex.Weight) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, c.UpdateExercise(ex.ID, tc.field, tc.value))
			w, _ := c.Current()
			require.Len(t, w.Exercises, 1)
			tc.expect(t, w.Exercises[0])
		})
	}

	assert.ErrorIs(t, c.UpdateExercise(ex.ID, "tempo", "3-1-1"), workouts.ErrUnknownField)
	assert.ErrorIs(t, c.UpdateExercise("missing", workouts.FieldSets, "1"), workouts.ErrExerciseNotFound)
}

func TestEditor_CopyPreviousWorkout(t *testing.T) {
	store := workouts.NewStore()
	source := workouts.Workout{
		ID:   "w1",
		Name: "Спина",
		Date: dateOn(2024, time.June, 3),
		Exercises: []workouts.Exercise{
			{ID: "e1", Name: "deadlift", Sets: 5, Reps: 5, Weight: 100, Notes: "belt"},
			{ID: "e2", Name: "rows", Sets: 3, Reps: 12, Weight: 40.5},
		},
	}
	store.Upsert(source)
	store.Upsert(testWorkout("older", dateOn(2024, time.May, 1), workouts.Exercise{ID: "x", Name: "old"}))

	c := newTestController(store)
	c.SelectDate(dateOn(2024, time.June, 10))
	assert.True(t, c.CanCopyPrevious())

	copied, err := c.CopyPreviousWorkout()
	require.NoError(t, err)
	require.True(t, copied)

	draft, _ := c.Current()
	assert.Equal(t, "Спина", draft.Name)
	assert.Equal(t, dateOn(2024, time.June, 10), draft.Date, "date is not copied")
	require.Len(t, draft.Exercises, len(source.Exercises))

	sourceIDs := map[string]bool{"e1": true, "e2": true}
	seen := map[string]bool{}
	for i, ex := range draft.Exercises {
		want := source.Exercises[i]
		assert.Equal(t, want.Name, ex.Name)
		assert.Equal(t, want.Sets, ex.Sets)
		assert.Equal(t, want.Reps, ex.Reps)
		assert.Equal(t, want.Weight, ex.Weight)
		assert.Equal(t, want.Notes, ex.Notes)
		assert.False(t, sourceIDs[ex.ID], "copied exercise keeps source id %s", ex.ID)
		assert.False(t, seen[ex.ID])
		seen[ex.ID] = true
	}

	// editing the copy does not touch the source
	require.NoError(t, c.UpdateExercise(draft.Exercises[0].ID, workouts.FieldSets, "1"))
	stored, ok := store.LookupByDate(source.Date)
	require.True(t, ok)
	assert.Equal(t, 5, stored.Exercises[0].Sets)
}

func TestEditor_CopyPreviousWorkout_NothingEarlier(t *testing.T) {
	store := workouts.NewStore()
	store.Upsert(testWorkout("later", dateOn(2024, time.June, 20), workouts.Exercise{ID: "x"}))

	c := newTestController(store)
	c.SelectDate(dateOn(2024, time.June, 10))
	assert.False(t, c.CanCopyPrevious())

	copied, err := c.CopyPreviousWorkout()
	require.NoError(t, err)
	assert.False(t, copied)

	draft, _ := c.Current()
	assert.Equal(t, workouts.DefaultWorkoutName, draft.Name)
	assert.Empty(t, draft.Exercises)
}

func TestEditor_CopyThenSave(t *testing.T) {
	store := workouts.NewStore()
	store.Upsert(testWorkout("w1", dateOn(2024, time.June, 3), workouts.Exercise{ID: "e1", Name: "squat", Sets: 3}))

	c := newTestController(store)
	d := dateOn(2024, time.June, 10)
	c.SelectDate(d)
	_, err := c.CopyPreviousWorkout()
	require.NoError(t, err)
	require.NoError(t, c.Save(context.Background()))

	assert.Equal(t, 2, store.Len())
	saved, ok := store.LookupByDate(d)
	require.True(t, ok)
	require.Len(t, saved.Exercises, 1)
	assert.Equal(t, "squat", saved.Exercises[0].Name)
	assert.NotEqual(t, "e1", saved.Exercises[0].ID)
}
