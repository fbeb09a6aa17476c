package cli

import (
	"context"

	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/spf13/cobra"
)

func newWhoAmICommand(ctx context.Context, opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the workouts are logged for.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(ctx, opts, func(_ context.Context, a *app) error {
				p := newPrinter(cmd.OutOrStdout())
				p.line("%s %s (id %d)", a.user.FirstName, a.user.LastName, a.user.ID)
				if a.demo {
					p.line("demo mode: no launch params, using the demo user")
				}
				return nil
			})
		},
	}
}

func newRecentCommand(ctx context.Context, opts *Options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the latest workouts, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(ctx, opts, func(_ context.Context, a *app) error {
				newPrinter(cmd.OutOrStdout()).recent(a.session.Store().RecentN(limit))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "number of workouts to list")

	return cmd
}

func newShowCommand(ctx context.Context, opts *Options) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the workout of a day.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			return withApp(ctx, opts, func(_ context.Context, a *app) error {
				p := newPrinter(cmd.OutOrStdout())
				ctrl := a.session.Controller()
				w := ctrl.SelectDate(date)
				if ctrl.State() == workouts.StateViewing {
					p.workout(*w)
					return nil
				}

				p.line("No workout on %s", date)
				if ctrl.CanCopyPrevious() {
					p.line("run copy-prev --date %s to start from the previous workout", date)
				}
				return ctrl.Cancel()
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "workout day in YYYY-MM-DD (default: today)")

	return cmd
}
