package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viewmark/viewmark/internal/capture"
)

func newSubmitCmd(v *viper.Viper) *cobra.Command {
	var simulateLocal bool

	cmd := &cobra.Command{
		Use:   "submit <email>",
		Short: "Join the waitlist through the capture form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := v.GetString("endpoint")
			opts := capture.OptionsFromEnv()
			opts.Logger = logger
			opts.SubmitTimeout = v.GetDuration("timeout")

			var submitter capture.Submitter = capture.NewHTTPSubmitter(endpoint, logger, opts.SubmitTimeout)
			if simulateLocal {
				u, err := url.Parse(endpoint)
				if err != nil {
					return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
				}
				submitter = capture.SelectSubmitter(u.Hostname(), submitter, capture.LocalSubmitter{Delay: opts.MinLoading})
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			outcome := runForm(ctx, capture.NewForm(submitter, opts), args[0])
			if outcome.State == capture.Success {
				fmt.Fprintln(cmd.OutOrStdout(), "You're on the waitlist.")
				return nil
			}
			return fmt.Errorf("%s", outcome.Error)
		},
	}

	cmd.Flags().BoolVar(&simulateLocal, "simulate-local", false, "skip the network for localhost endpoints")
	return cmd
}

// runForm submits email and blocks until the form shows its outcome: either
// Success or Idle with an inline error.
func runForm(ctx context.Context, form *capture.Form, email string) capture.Snapshot {
	defer form.Close()

	settled := make(chan capture.Snapshot, 1)
	submitted := false
	unsubscribe := form.Subscribe(func(s capture.Snapshot) {
		if s.State == capture.Submitting {
			submitted = true
		}
		if s.State == capture.Success || (s.State == capture.Idle && s.Error != "") {
			select {
			case settled <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	form.SetEmail(email)
	if err := form.Submit(ctx); err != nil && !submitted {
		// Validation failed before anything was sent.
		return form.Snapshot()
	}

	select {
	case s := <-settled:
		return s
	case <-ctx.Done():
		return capture.Snapshot{State: capture.Idle, Error: ctx.Err().Error()}
	}
}
