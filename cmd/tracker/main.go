// Command tracker is the operator CLI over the same storage the bot uses.
package main

import (
	"os"
	"team-tracker/internal/app"
	"team-tracker/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp loads the configuration, opens storage and runs the startup sweep.
func openApp() (*app.App, error) {
	cfg := config.GetConfig()
	logrus.SetLevel(cfg.LogLevel)

	application, err := app.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := application.Start(); err != nil {
		application.Close()
		return nil, err
	}
	return application, nil
}

// withApp runs fn against an opened app and closes it afterwards.
func withApp(fn func(cmd *cobra.Command, args []string, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		application, err := openApp()
		if err != nil {
			return err
		}
		defer func() {
			if err := application.Close(); err != nil {
				logrus.WithError(err).Warn("Error closing storage")
			}
		}()
		return fn(cmd, args, application)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Maintain the team roster and leave ledger",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newSweepCmd(),
		newDashboardCmd(),
		newExportCmd(),
		newImportCmd(),
		newClearCmd(),
		newReportCmd(),
	)
	return root
}
