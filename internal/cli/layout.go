package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

func newLayoutCmd(app *App) *cobra.Command {
	var (
		req        calendar.LayoutRequest
		eventsPath string
		users      string
		types      string
		from, to   int
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the layout of one calendar view",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.UserIDs = calendar.ParseSelection(users)
			req.TypeIDs = calendar.ParseSelection(types)
			if cmd.Flags().Changed("from") {
				req.From = &from
			}
			if cmd.Flags().Changed("to") {
				req.To = &to
			}

			var result calendar.LayoutResponse
			if eventsPath != "" {
				events, err := readEventsFile(eventsPath)
				if err != nil {
					return writeErr(cmd, err)
				}
				svc, err := app.newService(nil)
				if err != nil {
					return writeErr(cmd, err)
				}
				result, err = svc.ComputeLayout(cmd.Context(), calendar.ComputeLayoutRequest{
					LayoutRequest: req,
					Events:        events,
				})
				if err != nil {
					return writeErr(cmd, err)
				}
			} else {
				svc, store, err := app.openService(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				defer store.Close()
				if result, err = svc.Layout(cmd.Context(), req); err != nil {
					return writeErr(cmd, err)
				}
			}

			if app.Format == FormatGrid {
				out, err := renderLayout(result.Layout, app.loc)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			return writeOut(cmd, app, result.Layout)
		},
	}

	cmd.Flags().StringVar(&req.View, "view", string(calendar.ViewMonth), "View (day|week|month|year|agenda)")
	cmd.Flags().StringVar(&req.Date, "date", "", "Anchor date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "JSON file of events to lay out instead of the store")
	cmd.Flags().StringVar(&users, "users", "all", "Comma separated user ids, or all")
	cmd.Flags().StringVar(&types, "types", "all", "Comma separated calendar type ids, or all")
	cmd.Flags().IntVar(&from, "from", calendar.DefaultVisibleHours.From, "First visible hour")
	cmd.Flags().IntVar(&to, "to", calendar.DefaultVisibleHours.To, "End of the visible hours")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// readEventsFile reads a JSON array of events.
func readEventsFile(path string) ([]calendar.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	var events []calendar.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse events %s: %w", path, err)
	}
	return events, nil
}
