package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sessionrepo "github.com/bnema/doctowatch/internal/adapters/repo/session"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or reset the saved login session",
	}

	cmd.AddCommand(newSessionShowCmd(), newSessionClearCmd())

	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show where the session lives and what it holds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := sessionrepo.NewRepository(viper.New())
			if err != nil {
				return err
			}

			state, err := sessions.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "session file: %s\n", sessions.Path())
			if state.Empty() {
				fmt.Fprintln(out, "no saved session")
				return nil
			}

			fmt.Fprintf(out, "cookies: %d\n", len(state.Cookies))
			if state.LastURL != "" {
				fmt.Fprintf(out, "last url: %s\n", state.LastURL)
			}
			return nil
		},
	}
}

func newSessionClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved session, forcing a fresh login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := sessionrepo.NewRepository(viper.New())
			if err != nil {
				return err
			}

			if err := sessions.Clear(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	}
}
