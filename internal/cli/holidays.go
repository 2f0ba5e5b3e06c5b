package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

func newHolidaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage holidays in the local store",
	}

	importCmd := &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import holidays from an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("open holidays: %w", err))
			}
			defer f.Close()

			svc, store, err := app.openService(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer store.Close()

			result, err := svc.ImportHolidays(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, result)
		},
	}

	var period calendar.PeriodRequest
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List holidays in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := app.openService(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer store.Close()

			holidays, err := svc.ListHolidays(cmd.Context(), period)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": holidays})
		},
	}
	listCmd.Flags().StringVar(&period.StartDate, "start", "", "First day (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&period.EndDate, "end", "", "Last day (YYYY-MM-DD)")
	_ = listCmd.MarkFlagRequired("start")
	_ = listCmd.MarkFlagRequired("end")

	cmd.AddCommand(importCmd)
	cmd.AddCommand(listCmd)
	return cmd
}
