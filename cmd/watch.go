package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/doctowatch/internal/adapters/render/availability"
	"github.com/bnema/doctowatch/internal/application"
	"github.com/bnema/doctowatch/internal/domain"
)

// startDateLayout is how users type dates on the command line.
const startDateLayout = "02/01/2006"

func newWatchCmd() *cobra.Command {
	var (
		debug        bool
		startDateRaw string
		motiveID     int
	)

	cmd := &cobra.Command{
		Use:   "watch <doctor> <username> [password]",
		Short: "Watch a doctor's calendar and alert when a slot opens",
		Long:  "watch logs in with your account, resolves the doctor's booking page, then polls availabilities until a slot opens. The password can be omitted to type it in without echo.",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := application.WatchParams{
				DoctorID: args[0],
				Credentials: domain.Credentials{
					Username: args[1],
				},
				MotiveID: motiveID,
			}

			if startDateRaw != "" {
				startDate, err := time.Parse(startDateLayout, startDateRaw)
				if err != nil {
					return fmt.Errorf("parse start date %q: expected DD/MM/YYYY", startDateRaw)
				}
				params.StartDate = startDate
			}

			app, err := wireApp(wireOptions{Debug: debug})
			if err != nil {
				return err
			}

			if len(args) == 3 {
				params.Credentials.Password = args[2]
			} else {
				if !app.prompter.Interactive() {
					return fmt.Errorf("%w: a password must be typed in when it is not given as an argument", domain.ErrNoTerminal)
				}
				password, err := app.prompter.ReadSecret("Password: ")
				if err != nil {
					return err
				}
				params.Credentials.Password = password
			}

			return runWatch(cmd, app, params)
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Verbose logging plus raw HTTP capture to a temp directory")
	cmd.Flags().StringVar(&startDateRaw, "start-date", "", "First date to check, DD/MM/YYYY (default today)")
	cmd.Flags().IntVar(&motiveID, "motive-id", 0, "Consultation motive ID (skips the motive prompt)")

	return cmd
}

func runWatch(cmd *cobra.Command, app *app, params application.WatchParams) error {
	ctx := cmd.Context()

	state, err := app.sessions.Load(ctx)
	if err != nil {
		return err
	}
	app.transport.ImportState(state)

	// whatever happens next, keep the cookies we earned
	defer func() {
		if err := app.sessions.Save(context.WithoutCancel(ctx), app.transport.ExportState()); err != nil {
			app.log.Error().Err(err).Msg("save session")
		}
	}()

	plan, err := app.service.Prepare(ctx, params)
	if err != nil {
		return err
	}

	var alert domain.SlotAlert
	err = runWatchSpinner(ctx, cmd.ErrOrStderr(), func(ctx context.Context, progress application.ProgressFunc) error {
		var watchErr error
		alert, watchErr = app.service.WaitForSlot(ctx, plan, progress)
		return watchErr
	})
	if err != nil {
		return suppressCanceled(err)
	}

	output, err := availability.Render(alert)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), output); err != nil {
		return err
	}

	return suppressCanceled(app.service.NotifyUntilStopped(ctx, alert))
}

// suppressCanceled turns a user-initiated stop into a clean exit.
func suppressCanceled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
