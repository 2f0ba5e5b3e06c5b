package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
	"github.com/lshdainty/porest-hr-front-sub002/internal/repository/sqlite"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage events in the local store",
	}

	var replace bool
	importCmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a JSON array of events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := readEventsFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			store, err := sqlite.Open(cmd.Context(), app.DBPath, app.loc)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer store.Close()

			imported, skipped, err := importEvents(cmd.Context(), store, events, replace)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"imported": imported, "skipped": skipped})
		},
	}
	importCmd.Flags().BoolVar(&replace, "replace", false, "Overwrite events whose id already exists")

	var period calendar.PeriodRequest
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := app.openService(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer store.Close()

			events, err := svc.ListEvents(cmd.Context(), period)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": events})
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

// importEvents stores events in one transaction. Existing ids are skipped
// unless replace is set.
func importEvents(ctx context.Context, store *sqlite.Store, events []calendar.Event, replace bool) (imported, skipped int, err error) {
	repo := store.Events()
	err = store.WithinTx(ctx, func(ctx context.Context) error {
		for _, ev := range events {
			if err := ev.Validate(); err != nil {
				return err
			}
			if replace {
				if err := repo.Delete(ctx, ev.ID); err != nil && !errors.Is(err, calendar.ErrEventNotFound) {
					return err
				}
			}
			if _, err := repo.Create(ctx, ev); err != nil {
				if errors.Is(err, calendar.ErrEventExists) {
					skipped++
					continue
				}
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return imported, skipped, nil
}
