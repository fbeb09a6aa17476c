package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/spf13/cobra"
)

var errNothingToCopy = errors.New("no earlier workout to copy from")

func newCopyPreviousCommand(ctx context.Context, opts *Options) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "copy-prev",
		Short: "Fill the day's workout with the exercises of the latest earlier workout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			return withApp(ctx, opts, func(ctx context.Context, a *app) error {
				saved, err := a.edit(ctx, date, func(c *workouts.Controller) error {
					copied, err := c.CopyPreviousWorkout()
					if err != nil {
						return err
					}
					if !copied {
						return errNothingToCopy
					}
					return nil
				})
				if err != nil {
					return err
				}
				p := newPrinter(cmd.OutOrStdout())
				p.success("copied previous workout")
				p.workout(*saved)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "workout day in YYYY-MM-DD (default: today)")

	return cmd
}

func newAddExerciseCommand(ctx context.Context, opts *Options) *cobra.Command {
	var (
		dateFlag string
		name     string
		sets     string
		reps     string
		weight   string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add-exercise",
		Short: "Append an exercise to the day's workout, creating the workout if needed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			fields := []struct {
				field string
				value string
				set   bool
			}{
				{workouts.FieldName, name, cmd.Flags().Changed("name")},
				{workouts.FieldSets, sets, cmd.Flags().Changed("sets")},
				{workouts.FieldReps, reps, cmd.Flags().Changed("reps")},
				{workouts.FieldWeight, weight, cmd.Flags().Changed("weight")},
				{workouts.FieldNotes, notes, cmd.Flags().Changed("notes")},
			}

			return withApp(ctx, opts, func(ctx context.Context, a *app) error {
				saved, err := a.edit(ctx, date, func(c *workouts.Controller) error {
					ex, err := c.AddExercise()
					if err != nil {
						return err
					}
					for _, f := range fields {
						if !f.set {
							continue
						}
						if err := c.UpdateExercise(ex.ID, f.field, f.value); err != nil {
							return err
						}
					}
					return nil
				})
				if err != nil {
					return err
				}
				p := newPrinter(cmd.OutOrStdout())
				p.success("exercise added")
				p.workout(*saved)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dateFlag, "date", "", "workout day in YYYY-MM-DD (default: today)")
	flags.StringVar(&name, "name", "", "exercise name")
	flags.StringVar(&sets, "sets", "", "number of sets")
	flags.StringVar(&reps, "reps", "", "reps per set")
	flags.StringVar(&weight, "weight", "", "weight in kg, a comma works as decimal separator")
	flags.StringVar(&notes, "notes", "", "free text notes")

	return cmd
}

func newSetExerciseCommand(ctx context.Context, opts *Options) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "set-exercise <position> <field> <value>",
		Short: "Change one field (name, sets, reps, weight, notes) of an exercise.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			return withApp(ctx, opts, func(ctx context.Context, a *app) error {
				saved, err := a.edit(ctx, date, func(c *workouts.Controller) error {
					if err := requireStored(a, date); err != nil {
						return err
					}
					id, err := exerciseAt(c, args[0])
					if err != nil {
						return err
					}
					return c.UpdateExercise(id, args[1], args[2])
				})
				if err != nil {
					return err
				}
				newPrinter(cmd.OutOrStdout()).workout(*saved)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "workout day in YYYY-MM-DD (default: today)")

	return cmd
}

func newDeleteExerciseCommand(ctx context.Context, opts *Options) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "delete-exercise <position>",
		Short: "Remove an exercise from the day's workout.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			return withApp(ctx, opts, func(ctx context.Context, a *app) error {
				saved, err := a.edit(ctx, date, func(c *workouts.Controller) error {
					if err := requireStored(a, date); err != nil {
						return err
					}
					id, err := exerciseAt(c, args[0])
					if err != nil {
						return err
					}
					return c.DeleteExercise(id)
				})
				if err != nil {
					return err
				}
				p := newPrinter(cmd.OutOrStdout())
				p.success("exercise " + args[0] + " deleted")
				p.workout(*saved)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "workout day in YYYY-MM-DD (default: today)")

	return cmd
}

func newRenameCommand(ctx context.Context, opts *Options) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the day's workout, creating the workout if needed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			return withApp(ctx, opts, func(ctx context.Context, a *app) error {
				saved, err := a.edit(ctx, date, func(c *workouts.Controller) error {
					return c.RenameWorkout(args[0])
				})
				if err != nil {
					return err
				}
				newPrinter(cmd.OutOrStdout()).workout(*saved)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "workout day in YYYY-MM-DD (default: today)")

	return cmd
}

func requireStored(a *app, date workouts.Date) error {
	if !a.session.Store().HasWorkout(date) {
		return fmt.Errorf("no workout on %s", date)
	}
	return nil
}
