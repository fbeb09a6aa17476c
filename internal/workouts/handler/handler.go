package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/2beens/workoutlog/internal/middleware"
	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workouts"
	"github.com/2beens/workoutlog/internal/workouts/repo"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=handler_test

type workoutsRepo interface {
	EnsureUser(ctx context.Context, user repo.User) (int, error)
	GetByDate(ctx context.Context, userID int, date workouts.Date) (*repo.Workout, error)
	ListRecent(ctx context.Context, userID, limit int) ([]repo.Workout, error)
	Upsert(ctx context.Context, userID int, params repo.SaveParams) (int, error)
	ForgetUser(ctx context.Context, vkUserID int64)
}

const maxBodyBytes = 1 << 20

type ListResponse struct {
	Workouts []repo.Workout `json:"workouts"`
}

type GetResponse struct {
	Workout *repo.Workout `json:"workout"`
}

type SaveResponse struct {
	Success   bool `json:"success"`
	WorkoutID int  `json:"workout_id"`
}

type Handler struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
	listLimit      int
}

func NewHandler(repo workoutsRepo, metricsManager *metrics.Manager, listLimit int) *Handler {
	if listLimit <= 0 {
		listLimit = 50
	}
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
		listLimit:      listLimit,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/", handler.HandleGet).Methods("GET").Name("get-workouts")
	r.HandleFunc("/", handler.HandleSave).Methods("POST").Name("create-workout")
	r.HandleFunc("/", handler.HandleSave).Methods("PUT").Name("update-workout")
	r.HandleFunc("/", handler.HandleMethodNotAllowed).Name("workouts-not-allowed")
}

func (handler *Handler) HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	log.Tracef("workouts: method not allowed: %s", r.Method)
	pkg.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// HandleGet serves both the recent list (no query) and the lookup by ?date=.
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, err := handler.ensureUser(ctx)
	if err != nil {
		log.Errorf("workouts get, ensure user: %s", err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("user_id", userID))

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		list, err := handler.repo.ListRecent(ctx, userID, handler.listLimit)
		if err != nil {
			log.Errorf("list workouts for user %d: %s", userID, err)
			pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		pkg.WriteJSON(w, ListResponse{Workouts: list}, http.StatusOK)
		return
	}

	date, err := parseDateParam(dateParam)
	if err != nil {
		log.Tracef("workouts get, invalid date [%s]: %s", dateParam, err)
		pkg.WriteJSONError(w, "invalid date", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.GetByDate(ctx, userID, date)
	if err != nil && !errors.Is(err, repo.ErrWorkoutNotFound) {
		log.Errorf("get workout for user %d on %s: %s", userID, date, err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	handler.countLookup(workout != nil)

	pkg.WriteJSON(w, GetResponse{Workout: workout}, http.StatusOK)
}

// HandleSave creates or replaces the user's workout for the given date.
// POST and PUT behave the same: the (user, date) pair identifies the workout.
func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.save")
	defer span.End()

	var req saveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		log.Tracef("workouts save, unmarshal json: %s", err)
		pkg.WriteJSONError(w, "invalid workout json", http.StatusBadRequest)
		return
	}

	params, err := req.toSaveParams()
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := handler.ensureUser(ctx)
	if err != nil {
		log.Errorf("workouts save, ensure user: %s", err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("user_id", userID))

	workoutID, err := handler.repo.Upsert(ctx, userID, params)
	if errors.Is(err, repo.ErrUserNotFound) {
		// cached user id outlived its row, resolve once more
		vkUserID := handler.vkUserID(ctx)
		log.Warnf("workouts save, stale user %d for vk user %d", userID, vkUserID)
		handler.repo.ForgetUser(ctx, vkUserID)
		if userID, err = handler.ensureUser(ctx); err == nil {
			workoutID, err = handler.repo.Upsert(ctx, userID, params)
		}
	}
	if err != nil {
		if errors.Is(err, repo.ErrDateRequired) {
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("save workout for user %d on %s: %s", userID, params.Date, err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterWorkoutsSaved.WithLabelValues(r.Method).Inc()
		handler.metricsManager.HistExercisesPerWorkout.Observe(float64(len(params.Exercises)))
	}
	log.Debugf("workout %d saved for user %d on %s", workoutID, userID, params.Date)

	pkg.WriteJSON(w, SaveResponse{Success: true, WorkoutID: workoutID}, http.StatusOK)
}

func (handler *Handler) ensureUser(ctx context.Context) (int, error) {
	vkUser := currentVKUser(ctx)
	return handler.repo.EnsureUser(ctx, repo.User{
		VKUserID:  vkUser.VKUserID,
		FirstName: vkUser.FirstName,
		LastName:  vkUser.LastName,
		AvatarURL: vkUser.AvatarURL,
	})
}

func (handler *Handler) vkUserID(ctx context.Context) int64 {
	return currentVKUser(ctx).VKUserID
}

func currentVKUser(ctx context.Context) middleware.VKUser {
	vkUser, ok := middleware.VKUserFromContext(ctx)
	if !ok {
		vkUser = middleware.VKUser{VKUserID: middleware.DemoVKUserID}
	}
	return vkUser
}

func (handler *Handler) countLookup(found bool) {
	if handler.metricsManager == nil {
		return
	}
	label := "false"
	if found {
		label = "true"
	}
	handler.metricsManager.CounterWorkoutLookups.WithLabelValues(label).Inc()
}

// parseDateParam accepts YYYY-MM-DD, optionally followed by a
// "T<clock>[zone]" timestamp part which is ignored.
func parseDateParam(s string) (workouts.Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		if !isTimestampSuffix(s[10:]) {
			return workouts.Date{}, fmt.Errorf("invalid date: %s", s)
		}
		s = s[:10]
	}
	return workouts.ParseDate(s)
}

func isTimestampSuffix(rest string) bool {
	if len(rest) < 2 || rest[0] != 'T' {
		return false
	}
	return strings.Trim(rest[1:], "0123456789:.+-Z") == ""
}
