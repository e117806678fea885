// Command cli runs database migrations and drives the waitlist capture form
// and the page-view tracker against a running server.
package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viewmark/viewmark/config"
	"github.com/viewmark/viewmark/internal/log"
)

const envPrefix = "VIEWMARK"

var logger = log.NewLoggerWithJSONOutput()

func newRootCmd(v *viper.Viper) *cobra.Command {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "cli",
		Short:         "Viewmark operations and client tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Runs before any viper lookup so VIEWMARK_* values from the file
		// reach AutomaticEnv.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnvFile(logger, v.GetString("env-file"))
		},
	}

	root.PersistentFlags().String("endpoint", "http://localhost:8080", "base URL of the viewmark server")
	root.PersistentFlags().Duration("timeout", 10*time.Second, "HTTP timeout for client commands")
	root.PersistentFlags().String("env-file", "", "dotenv file to load (default $VIEWMARK_ENV_FILE or .env)")
	_ = v.BindPFlag("env-file", root.PersistentFlags().Lookup("env-file"))
	_ = v.BindPFlag("endpoint", root.PersistentFlags().Lookup("endpoint"))
	_ = v.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))

	root.AddCommand(newMigrateCmd(), newSubmitCmd(v), newTrackCmd(v))
	return root
}

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
