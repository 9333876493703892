package main

import (
	"errors"
	"fmt"
	"os"
	"team-tracker/internal/app"
	"team-tracker/internal/service"
	"team-tracker/pkg/numerals"
	"time"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Return persons whose leave ended to active",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			// Start already swept once; a second pass reports nothing new
			// unless the date changed in between.
			changed := a.Store.Sweep()
			fmt.Fprintf(cmd.OutOrStdout(), "%d person(s) returned to active\n", len(changed))
			return nil
		}),
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print status counts and the latest records",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			summary := a.Dashboard.Summary()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "total:    %d\n", summary.Total)
			fmt.Fprintf(out, "active:   %d\n", summary.Active)
			fmt.Fprintf(out, "on-leave: %d\n", summary.OnLeave)
			fmt.Fprintf(out, "absent:   %d\n", summary.Absent)
			fmt.Fprintf(out, "inactive: %d\n", summary.Inactive)

			if len(summary.Recent) > 0 {
				fmt.Fprintln(out, "\nrecent:")
			}
			for _, leave := range summary.Recent {
				fmt.Fprintf(out, "  %s  %s  %s .. %s  (%d)\n",
					leave.PersonName,
					service.LeaveTypeLabel(leave.Type),
					numerals.FormatDate(leave.StartDate.Time),
					numerals.FormatDate(leave.EndDate.Time),
					leave.Duration(),
				)
			}
			return nil
		}),
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write both collections as JSON",
		Long:  "Write both collections as JSON to file, or to team-data-<ms>.json when no file is given. Use - for stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			data, err := a.Backup.Export()
			if err != nil {
				return err
			}

			path := service.ExportFileName(time.Now())
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}

			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
			return nil
		}),
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the collections present in a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			result, err := a.Backup.Import(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.PersonnelReplaced {
				fmt.Fprintf(out, "personnel replaced: %d\n", result.Personnel)
			}
			if result.LeavesReplaced {
				fmt.Fprintf(out, "leaves replaced: %d\n", result.Leaves)
			}
			if !result.PersonnelReplaced && !result.LeavesReplaced {
				fmt.Fprintln(out, "nothing to import")
			}
			return nil
		}),
	}
}

var errClearNotConfirmed = errors.New("clear needs both --yes and --yes-really")

func newClearCmd() *cobra.Command {
	var yes, yesReally bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every person and every record",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !yes || !yesReally {
				return errClearNotConfirmed
			}
			return nil
		},
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			a.Backup.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
			return nil
		}),
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	cmd.Flags().BoolVar(&yesReally, "yes-really", false, "confirm deletion a second time")
	return cmd
}

func newReportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:       "report xlsx|ics",
		Short:     "Write a spreadsheet or calendar report",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"xlsx", "ics"},
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			var (
				data     []byte
				filename string
			)

			switch args[0] {
			case "xlsx":
				buf, name, err := a.Reports.ExportXLSX()
				if err != nil {
					return err
				}
				data, filename = buf.Bytes(), name
			case "ics":
				ics, name, err := a.Reports.ExportICS()
				if err != nil {
					return err
				}
				data, filename = ics, name
			}

			if outPath != "" {
				filename = outPath
			}
			if err := os.WriteFile(filename, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", filename, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", filename)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default: generated name)")
	return cmd
}
