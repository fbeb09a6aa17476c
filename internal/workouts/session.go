package workouts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// SaveResult is what the remote store answers to create and update calls.
type SaveResult struct {
	Success   bool
	WorkoutID string
}

//go:generate mockgen -source=$GOFILE -destination=session_mocks_test.go -package=workouts_test

// RemoteStore is the remote persistence the session syncs with.
type RemoteStore interface {
	FetchAll(ctx context.Context) ([]Workout, error)
	FetchByDate(ctx context.Context, date Date) (*Workout, error)
	Create(ctx context.Context, w Workout) (*SaveResult, error)
	Update(ctx context.Context, w Workout) (*SaveResult, error)
}

// Session ties the local store to a remote store: it loads the remote
// workouts into the store and pushes every saved workout back.
// Failed pushes leave the local edit in place, unsynced.
type Session struct {
	store  *Store
	remote RemoteStore

	mu     sync.Mutex
	synced map[string]bool // ids known to the remote store
}

func NewSession(store *Store, remote RemoteStore) *Session {
	return &Session{
		store:  store,
		remote: remote,
		synced: make(map[string]bool),
	}
}

func (s *Session) Store() *Store {
	return s.store
}

// Load replaces the local store content with the remote workouts.
func (s *Session) Load(ctx context.Context) error {
	ws, err := s.remote.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch all: %w", err)
	}

	s.store.Replace(ws)

	s.mu.Lock()
	s.synced = make(map[string]bool, len(ws))
	for _, w := range ws {
		s.synced[w.ID] = true
	}
	s.mu.Unlock()

	log.Debugf("session loaded %d workouts", len(ws))
	return nil
}

// Refresh pulls the workout for a single date, and puts it into the store.
func (s *Session) Refresh(ctx context.Context, date Date) (*Workout, error) {
	w, err := s.remote.FetchByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetch by date [%s]: %w", date, err)
	}
	if w == nil {
		return nil, nil
	}

	s.store.Upsert(*w)
	s.markSynced(w.ID)
	return w, nil
}

// Push sends a workout to the remote store: update if the remote store
// already knows it, create otherwise. When the remote store hands out its
// own identifier, the local copy is re-keyed to it.
func (s *Session) Push(ctx context.Context, w Workout) (string, error) {
	var (
		res *SaveResult
		err error
	)
	if s.isSynced(w.ID) {
		res, err = s.remote.Update(ctx, w)
	} else {
		res, err = s.remote.Create(ctx, w)
	}
	if err != nil {
		return "", fmt.Errorf("push workout %s: %w", w.ID, err)
	}
	if res == nil || !res.Success {
		return "", errors.New("push workout: remote store did not report success")
	}

	remoteID := res.WorkoutID
	if remoteID == "" {
		remoteID = w.ID
	}
	if remoteID != w.ID {
		log.Tracef("workout %s re-keyed to remote id %s", w.ID, remoteID)
		w.ID = remoteID
		s.store.Upsert(w)
	}
	s.markSynced(remoteID)
	return remoteID, nil
}

// Controller returns a controller over the session store that pushes every
// saved workout to the remote store.
func (s *Session) Controller(opts ...ControllerOption) *Controller {
	opts = append(opts, WithSaveHook(func(ctx context.Context, w Workout) error {
		_, err := s.Push(ctx, w)
		return err
	}))
	return NewController(s.store, opts...)
}

func (s *Session) isSynced(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.synced[id]
}

func (s *Session) markSynced(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synced[id] = true
}
