package workouts

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotEditing        = errors.New("no workout open for editing")
)

type State int

const (
	StateIdle State = iota
	StateViewing
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SaveHook is called after a draft was committed into the store.
type SaveHook func(ctx context.Context, w Workout) error

// Controller maps date selections onto store lookups and owns the workout
// that is currently open. The open workout is always a private copy; the
// store only sees it on Save.
//
// A Controller is meant to be driven from a single goroutine.
type Controller struct {
	store  *Store
	ids    IDGenerator
	onSave SaveHook

	state        State
	selectedDate Date
	current      *Workout
}

type ControllerOption func(c *Controller)

func WithIDGenerator(ids IDGenerator) ControllerOption {
	return func(c *Controller) {
		c.ids = ids
	}
}

func WithSaveHook(hook SaveHook) ControllerOption {
	return func(c *Controller) {
		c.onSave = hook
	}
}

func NewController(store *Store, opts ...ControllerOption) *Controller {
	c := &Controller{
		store: store,
		ids:   UUIDGenerator{},
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) SelectedDate() Date {
	return c.selectedDate
}

// Current returns a copy of the open workout.
func (c *Controller) Current() (*Workout, bool) {
	if c.current == nil {
		return nil, false
	}
	w := c.current.Clone()
	return &w, true
}

// SelectDate opens the workout stored for the date read-only, or starts an
// empty draft for it. Anything open before is dropped without a warning.
func (c *Controller) SelectDate(date Date) *Workout {
	c.selectedDate = date

	if existing, ok := c.store.LookupByDate(date); ok {
		log.Tracef("select date [%s]: viewing workout %s", date, existing.ID)
		c.current = existing
		c.state = StateViewing
	} else {
		draft := Workout{
			ID:        c.ids.NewID(),
			Name:      DefaultWorkoutName,
			Date:      date,
			Exercises: []Exercise{},
		}
		log.Tracef("select date [%s]: new draft %s", date, draft.ID)
		c.current = &draft
		c.state = StateEditing
	}

	w, _ := c.Current()
	return w
}

// Open shows an already known workout read-only, e.g. one picked from the
// recent workouts list.
func (c *Controller) Open(w Workout) {
	open := w.Clone()
	c.selectedDate = w.Date
	c.current = &open
	c.state = StateViewing
}

// Edit switches the viewed workout into edit mode.
func (c *Controller) Edit() error {
	if c.state != StateViewing {
		return fmt.Errorf("edit from %s: %w", c.state, ErrInvalidTransition)
	}
	c.state = StateEditing
	return nil
}

// Save commits the draft into the store and closes it. The save hook runs
// after the local commit; its error is returned but the commit stands.
func (c *Controller) Save(ctx context.Context) error {
	if c.state != StateEditing || c.current == nil {
		return fmt.Errorf("save from %s: %w", c.state, ErrInvalidTransition)
	}

	saved := c.current.Clone()
	c.store.Upsert(saved)
	c.reset()

	log.Debugf("workout %s saved for [%s] with %d exercises", saved.ID, saved.Date, len(saved.Exercises))

	if c.onSave == nil {
		return nil
	}
	if err := c.onSave(ctx, saved); err != nil {
		return fmt.Errorf("on save: %w", err)
	}
	return nil
}

// Cancel drops the in-memory edits. A never saved draft is simply discarded,
// an edited stored workout keeps its stored version.
func (c *Controller) Cancel() error {
	switch c.state {
	case StateEditing:
		if c.current != nil && c.store.HasID(c.current.ID) {
			log.Tracef("cancel: edits of workout %s discarded", c.current.ID)
		} else {
			log.Tracef("cancel: draft discarded")
		}
		c.reset()
		return nil
	case StateViewing:
		c.reset()
		return nil
	default:
		return fmt.Errorf("cancel from %s: %w", c.state, ErrInvalidTransition)
	}
}

// Close closes a workout opened for viewing.
func (c *Controller) Close() error {
	if c.state != StateViewing {
		return fmt.Errorf("close from %s: %w", c.state, ErrInvalidTransition)
	}
	c.reset()
	return nil
}

func (c *Controller) reset() {
	c.current = nil
	c.state = StateIdle
}

func (c *Controller) draft() (*Workout, error) {
	if c.state != StateEditing || c.current == nil {
		return nil, ErrNotEditing
	}
	return c.current, nil
}
