package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/2beens/workoutlog/internal/logging"

	"github.com/spf13/cobra"
)

const (
	envAPIURL       = "WORKOUTLOG_API_URL"
	envLaunchParams = "WORKOUTLOG_LAUNCH_PARAMS"

	defaultAPIURL  = "http://localhost:9000"
	defaultTimeout = 15 * time.Second
)

// Options are the persistent flags shared by all commands.
type Options struct {
	APIURL       string
	LaunchParams string
	Timeout      time.Duration
	LogLevel     string
}

// NewRootCommand creates the workoutlog command tree.
func NewRootCommand(ctx context.Context) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "workoutlog",
		Short: "Log and review workouts kept on the workouts backend.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.LoggerSetupParams{
				LogLevel: opts.LogLevel,
				Output:   cmd.ErrOrStderr(),
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.APIURL, "api-url", envOr(envAPIURL, defaultAPIURL), "workouts backend base URL (env "+envAPIURL+")")
	flags.StringVar(&opts.LaunchParams, "launch-params", os.Getenv(envLaunchParams), "VK launch params query string, demo user when empty (env "+envLaunchParams+")")
	flags.DurationVar(&opts.Timeout, "timeout", defaultTimeout, "timeout for a single command")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "log level [trace | debug | info | warn | error]")

	cmd.AddCommand(
		newWhoAmICommand(ctx, opts),
		newRecentCommand(ctx, opts),
		newShowCommand(ctx, opts),
		newCopyPreviousCommand(ctx, opts),
		newAddExerciseCommand(ctx, opts),
		newSetExerciseCommand(ctx, opts),
		newDeleteExerciseCommand(ctx, opts),
		newRenameCommand(ctx, opts),
	)

	return cmd
}

// Main is used by cmd/workoutlog to keep wiring inside this package.
// It returns the process exit code.
func Main(ctx context.Context) int {
	if err := NewRootCommand(ctx).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
