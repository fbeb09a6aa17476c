//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/2beens/workoutlog/internal/identity"
	"github.com/2beens/workoutlog/internal/remote"
	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// each test uses its own vk user, the suite shares one database
func (s *IntegrationTestSuite) newSession(ctx context.Context, launchParams string) (*workouts.Session, *remote.Client) {
	t := s.T()
	provider := identity.NewProvider(identity.NewLaunchParamsBridge(launchParams))
	_, err := provider.Initialize(ctx)
	require.NoError(t, err)

	client := remote.NewClient(serverEndpoint, provider, s.httpClient)
	session := workouts.NewSession(workouts.NewStore(), client)
	require.NoError(t, session.Load(ctx))
	return session, client
}

func (s *IntegrationTestSuite) TestWorkouts_SaveEditAndReload() {
	ctx := context.Background()
	t := s.T()

	session, client := s.newSession(ctx, "vk_user_id=1001&first_name=Anna&last_name=Petrova")
	assert.Equal(t, 0, session.Store().Len())

	day := workouts.NewDate(2024, 6, 3)
	ctrl := session.Controller()
	ctrl.SelectDate(day)
	require.NoError(t, ctrl.RenameWorkout("Upper"))
	for _, name := range []string{"Bench", "Row", "Press"} {
		ex, err := ctrl.AddExercise()
		require.NoError(t, err)
		require.NoError(t, ctrl.UpdateExercise(ex.ID, workouts.FieldName, name))
		require.NoError(t, ctrl.UpdateExercise(ex.ID, workouts.FieldSets, "3"))
		require.NoError(t, ctrl.UpdateExercise(ex.ID, workouts.FieldWeight, "40,5"))
	}
	require.NoError(t, ctrl.Save(ctx))

	got, err := client.FetchByDate(ctx, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Upper", got.Name)
	require.Len(t, got.Exercises, 3)
	assert.Equal(t, "Bench", got.Exercises[0].Name)
	assert.Equal(t, "Press", got.Exercises[2].Name)
	assert.Equal(t, 40.5, got.Exercises[1].Weight)

	// a fresh session sees the saved workout and edits it in place
	reloaded, _ := s.newSession(ctx, "vk_user_id=1001")
	require.Equal(t, 1, reloaded.Store().Len())
	ctrl = reloaded.Controller()
	ctrl.SelectDate(day)
	require.Equal(t, workouts.StateViewing, ctrl.State())
	require.NoError(t, ctrl.Edit())
	current, _ := ctrl.Current()
	require.NoError(t, ctrl.DeleteExercise(current.Exercises[1].ID))
	require.NoError(t, ctrl.Save(ctx))

	all, err := client.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Exercises, 2)
	assert.Equal(t, "Press", all[0].Exercises[1].Name)

	var firstName string
	require.NoError(t, s.DB.QueryRow(`SELECT first_name FROM users WHERE vk_user_id = $1`, 1001).Scan(&firstName))
	assert.Equal(t, "Anna", firstName)

	var workoutRows int
	require.NoError(t, s.DB.QueryRow(
		`SELECT count(*) FROM workouts w JOIN users u ON u.id = w.user_id WHERE u.vk_user_id = $1`, 1001,
	).Scan(&workoutRows))
	assert.Equal(t, 1, workoutRows)
}

func (s *IntegrationTestSuite) TestWorkouts_CopyPreviousAndIsolation() {
	ctx := context.Background()
	t := s.T()

	session, _ := s.newSession(ctx, "vk_user_id=1002")
	ctrl := session.Controller()
	ctrl.SelectDate(workouts.NewDate(2024, 6, 1))
	ex, err := ctrl.AddExercise()
	require.NoError(t, err)
	require.NoError(t, ctrl.UpdateExercise(ex.ID, workouts.FieldName, "Deadlift"))
	require.NoError(t, ctrl.Save(ctx))

	next := workouts.NewDate(2024, 6, 8)
	ctrl.SelectDate(next)
	require.True(t, ctrl.CanCopyPrevious())
	copied, err := ctrl.CopyPreviousWorkout()
	require.NoError(t, err)
	require.True(t, copied)
	require.NoError(t, ctrl.Save(ctx))

	reloaded, _ := s.newSession(ctx, "vk_user_id=1002")
	recent := reloaded.Store().RecentN(5)
	require.Len(t, recent, 2)
	assert.Equal(t, next, recent[0].Date)
	assert.Equal(t, "Deadlift", recent[0].Exercises[0].Name)

	other, _ := s.newSession(ctx, "vk_user_id=1003")
	assert.Equal(t, 0, other.Store().Len())
}

func (s *IntegrationTestSuite) TestWorkouts_RawAPI() {
	ctx := context.Background()
	t := s.T()

	do := func(method, path, body string, headers map[string]string) (int, string) {
		req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, strings.NewReader(body))
		require.NoError(t, err)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(respBytes)
	}
	user := map[string]string{"X-VK-User-ID": "1004", "Content-Type": "application/json"}

	code, body := do(http.MethodOptions, "/", "", nil)
	assert.Equal(t, http.StatusOK, code, body)

	code, body = do(http.MethodDelete, "/", "", user)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, body)

	code, _ = do(http.MethodGet, "/?date=not-a-date", "", user)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(http.MethodGet, "/", "", map[string]string{"X-VK-User-ID": "abc"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(http.MethodPost, "/", `{"name":"No date"}`, user)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = do(http.MethodPost, "/",
		`{"date":"2024-07-01","exercises":[{"name":"Pull-up","sets":"4","reps":"8","weight":"abc"}]}`, user)
	require.Equal(t, http.StatusOK, code, body)
	var saved struct {
		Success   bool `json:"success"`
		WorkoutID int  `json:"workout_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &saved))
	assert.True(t, saved.Success)
	assert.Positive(t, saved.WorkoutID)

	code, body = do(http.MethodGet, "/?date=2024-07-01", "", user)
	require.Equal(t, http.StatusOK, code)
	var got struct {
		Workout struct {
			ID        int    `json:"id"`
			Name      string `json:"name"`
			Exercises []struct {
				Sets   int     `json:"sets"`
				Weight float64 `json:"weight"`
			} `json:"exercises"`
		} `json:"workout"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, saved.WorkoutID, got.Workout.ID)
	assert.Equal(t, workouts.DefaultWorkoutName, got.Workout.Name)
	require.Len(t, got.Workout.Exercises, 1)
	assert.Equal(t, 4, got.Workout.Exercises[0].Sets)
	assert.Equal(t, 0.0, got.Workout.Exercises[0].Weight)

	code, body = do(http.MethodGet, "/?date=2024-07-02", "", user)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"workout":null}`, body)
}
