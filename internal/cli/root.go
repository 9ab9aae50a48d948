package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Untitled-ITU/nutrify-sub000/internal/api"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "nutrify",
	Short:         "Plan the week's meals and work out what to buy",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		slog.SetDefault(newLogger(verbose))
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "log API requests to stderr")

	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(shoppingCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		_, _ = fmt.Fprintln(os.Stderr, Error("error: "+describeError(err)))
	}
	return err
}

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

// describeError adds sign-in guidance to authentication failures.
func describeError(err error) string {
	if errors.Is(err, api.ErrUnauthenticated) {
		return fmt.Sprintf("%s (sign in to the web app and run 'nutrify config set token <token>')", err)
	}
	return err.Error()
}

// cmdContext returns the command's context, or a background context when
// the command was not started through Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
