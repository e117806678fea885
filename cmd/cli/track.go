package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viewmark/viewmark/internal/tracker"
)

func newTrackCmd(v *viper.Viper) *cobra.Command {
	var userAgent, referrer string

	cmd := &cobra.Command{
		Use:   "track <path>",
		Short: "Record one page view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout := v.GetDuration("timeout")
			sender := tracker.NewHTTPSender(v.GetString("endpoint"), logger, timeout)
			t := tracker.New(sender, tracker.Options{Logger: logger, SendTimeout: timeout})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			t.TrackPageView(ctx, tracker.View{Path: args[0], UserAgent: userAgent, Referrer: referrer})
			t.Flush()

			fmt.Fprintf(cmd.OutOrStdout(), "tracked %s (session %s)\n", args[0], t.SessionID())
			return nil
		},
	}

	cmd.Flags().StringVar(&userAgent, "user-agent", "viewmark-cli", "user agent to report")
	cmd.Flags().StringVar(&referrer, "referrer", "", "referrer to report")
	return cmd
}
