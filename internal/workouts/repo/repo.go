package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workouts"
	"github.com/2beens/workoutlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDateRequired    = errors.New("workout date is required")
)

type userIDCache interface {
	Get(ctx context.Context, vkUserID int64) (int, bool)
	Set(ctx context.Context, vkUserID int64, userID int)
	Delete(ctx context.Context, vkUserID int64)
}

type Repo struct {
	db    *pgxpool.Pool
	users userIDCache
}

// NewRepo creates the workouts repo. users may be nil, then every
// EnsureUser call goes to the db.
func NewRepo(db *pgxpool.Pool, users userIDCache) *Repo {
	return &Repo{
		db:    db,
		users: users,
	}
}

// EnsureUser returns the internal id of the vk user, creating the user on
// first sight. Profile fields are only written on creation.
func (r *Repo) EnsureUser(ctx context.Context, user User) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.ensureUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("vk_user_id", user.VKUserID))

	if r.users != nil {
		if id, ok := r.users.Get(ctx, user.VKUserID); ok {
			span.SetAttributes(attribute.Bool("cached", true))
			return id, nil
		}
	}

	var id int
	err = r.db.QueryRow(
		ctx,
		`SELECT id FROM users WHERE vk_user_id = $1`,
		user.VKUserID,
	).Scan(&id)
	switch {
	case err == nil:
	case errors.Is(err, pgx.ErrNoRows):
		// ON CONFLICT covers two first requests of the same user racing
		err = r.db.QueryRow(
			ctx,
			`INSERT INTO users (vk_user_id, first_name, last_name, avatar_url)
				VALUES ($1, $2, $3, $4)
			ON CONFLICT (vk_user_id) DO UPDATE SET vk_user_id = EXCLUDED.vk_user_id
			RETURNING id;`,
			user.VKUserID, nullIfEmpty(user.FirstName), nullIfEmpty(user.LastName), nullIfEmpty(user.AvatarURL),
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert user: %w", err)
		}
		log.Debugf("new user created for vk user %d: %d", user.VKUserID, id)
	default:
		return 0, fmt.Errorf("select user: %w", err)
	}

	if r.users != nil {
		r.users.Set(ctx, user.VKUserID, id)
	}

	return id, nil
}

// ForgetUser drops the cached user id of the vk user, if any.
func (r *Repo) ForgetUser(ctx context.Context, vkUserID int64) {
	if r.users != nil {
		r.users.Delete(ctx, vkUserID)
	}
}

// UserID looks the vk user up without creating it.
func (r *Repo) UserID(ctx context.Context, vkUserID int64) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.userID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if r.users != nil {
		if id, ok := r.users.Get(ctx, vkUserID); ok {
			return id, nil
		}
	}

	var id int
	if err := r.db.QueryRow(ctx, `SELECT id FROM users WHERE vk_user_id = $1`, vkUserID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return id, nil
}

func (r *Repo) GetByDate(ctx context.Context, userID int, date workouts.Date) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.getByDate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))
	span.SetAttributes(attribute.String("date", date.String()))

	var w Workout
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, workout_date, created_at, updated_at
			FROM workouts
			WHERE user_id = $1 AND workout_date = $2;`,
		userID, date.Time(),
	).Scan(&w.ID, &w.Name, dateScanner{&w.Date}, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	exercisesByWorkout, err := r.exercisesFor(ctx, []int{w.ID})
	if err != nil {
		return nil, err
	}
	w.Exercises = exercisesByWorkout[w.ID]
	if w.Exercises == nil {
		w.Exercises = []Exercise{}
	}
	w.ExerciseCount = len(w.Exercises)

	return &w, nil
}

// ListRecent returns up to limit workouts of the user, latest date first,
// each with its exercises in order.
func (r *Repo) ListRecent(ctx context.Context, userID, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listRecent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT w.id, w.name, w.workout_date, w.created_at, w.updated_at, COUNT(e.id) AS exercise_count
			FROM workouts w
			LEFT JOIN exercises e ON w.id = e.workout_id
			WHERE w.user_id = $1
			GROUP BY w.id, w.name, w.workout_date, w.created_at, w.updated_at
			ORDER BY w.workout_date DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Workout
	var ids []int
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.Name, dateScanner{&w.Date}, &w.CreatedAt, &w.UpdatedAt, &w.ExerciseCount); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		list = append(list, w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return []Workout{}, nil
	}

	exercisesByWorkout, err := r.exercisesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Exercises = exercisesByWorkout[list[i].ID]
		if list[i].Exercises == nil {
			list[i].Exercises = []Exercise{}
		}
	}

	return list, nil
}

// Upsert stores the user's workout for params.Date, replacing the name and
// all exercises of an existing one. Returns the workout id.
func (r *Repo) Upsert(ctx context.Context, userID int, params SaveParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))
	span.SetAttributes(attribute.Int("exercises", len(params.Exercises)))

	if params.Date.IsZero() {
		return 0, ErrDateRequired
	}
	if params.Name == "" {
		params.Name = workouts.DefaultWorkoutName
	}

	var workoutID int
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO workouts (user_id, name, workout_date)
				VALUES ($1, $2, $3)
			ON CONFLICT (user_id, workout_date)
			DO UPDATE SET name = EXCLUDED.name, updated_at = CURRENT_TIMESTAMP
			RETURNING id;`,
			userID, params.Name, params.Date.Time(),
		).Scan(&workoutID); err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return fmt.Errorf("upsert workout, user %d: %w", userID, ErrUserNotFound)
			}
			return fmt.Errorf("upsert workout: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM exercises WHERE workout_id = $1`, workoutID); err != nil {
			return fmt.Errorf("delete exercises: %w", err)
		}

		if len(params.Exercises) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, e := range params.Exercises {
			batch.Queue(
				`INSERT INTO exercises (workout_id, name, sets, reps, weight, notes, exercise_order)
					VALUES ($1, $2, $3, $4, $5, $6, $7);`,
				workoutID, e.Name, e.Sets, e.Reps, e.Weight, e.Notes, i,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert exercises: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int("workout_id", workoutID))
	return workoutID, nil
}

// exercisesFor loads exercises of the given workouts, keyed by workout id.
func (r *Repo) exercisesFor(ctx context.Context, workoutIDs []int) (map[int][]Exercise, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, workout_id, name, sets, reps, weight::float8, notes
			FROM exercises
			WHERE workout_id = ANY($1)
			ORDER BY workout_id, exercise_order, id;`,
		workoutIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	result := make(map[int][]Exercise, len(workoutIDs))
	for rows.Next() {
		var (
			e         Exercise
			workoutID int
		)
		if err := rows.Scan(&e.ID, &workoutID, &e.Name, &e.Sets, &e.Reps, &e.Weight, &e.Notes); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		result[workoutID] = append(result[workoutID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
