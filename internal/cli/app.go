package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/workoutlog/internal/identity"
	"github.com/2beens/workoutlog/internal/remote"
	"github.com/2beens/workoutlog/internal/workouts"

	log "github.com/sirupsen/logrus"
)

// app is what every command runs against: the user identity and a session
// loaded from the backend.
type app struct {
	user    *identity.User
	demo    bool
	session *workouts.Session
}

func newApp(ctx context.Context, opts *Options) (*app, error) {
	provider := identity.NewProvider(identity.NewLaunchParamsBridge(opts.LaunchParams))
	user, err := provider.Initialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize identity: %w", err)
	}

	client := remote.NewClient(opts.APIURL, provider, &http.Client{Timeout: opts.Timeout})

	session := workouts.NewSession(workouts.NewStore(), client)
	if err := session.Load(ctx); err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}
	log.Debugf("loaded %d workouts for user %d", session.Store().Len(), user.ID)

	return &app{
		user:    user,
		demo:    provider.IsDemo(),
		session: session,
	}, nil
}

// withApp bounds the command by the configured timeout.
func withApp(ctx context.Context, opts *Options, fn func(ctx context.Context, a *app) error) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	return fn(ctx, a)
}

// edit opens the workout for date in edit mode (a new draft when there is
// none), applies fn and saves. A failing fn discards the draft.
func (a *app) edit(ctx context.Context, date workouts.Date, fn func(c *workouts.Controller) error) (*workouts.Workout, error) {
	ctrl := a.session.Controller()
	ctrl.SelectDate(date)
	if ctrl.State() == workouts.StateViewing {
		if err := ctrl.Edit(); err != nil {
			return nil, err
		}
	}

	if err := fn(ctrl); err != nil {
		if cancelErr := ctrl.Cancel(); cancelErr != nil {
			log.Errorf("cancel edit: %s", cancelErr)
		}
		return nil, err
	}

	if err := ctrl.Save(ctx); err != nil {
		return nil, err
	}

	saved, ok := a.session.Store().LookupByDate(date)
	if !ok {
		return nil, fmt.Errorf("workout for %s missing after save", date)
	}
	return saved, nil
}
