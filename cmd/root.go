package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dw",
		Short:         "Doctolib slot watcher (dw): get alerted the moment an appointment opens",
		Long:          "dw logs into your Doctolib account, watches a doctor's calendar for the consultation motive you care about, and rings the terminal bell as soon as a bookable slot shows up.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newWatchCmd(),
		newSessionCmd(),
	)

	return rootCmd
}
