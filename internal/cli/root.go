package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lshdainty/porest-hr-front-sub002/internal/config"
	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
	"github.com/lshdainty/porest-hr-front-sub002/internal/repository/sqlite"
	calendarService "github.com/lshdainty/porest-hr-front-sub002/internal/service/calendar"
)

const (
	FormatJSON = "json"
	FormatGrid = "grid"
)

type App struct {
	DBPath      string
	Format      string
	PrettyJSON  bool
	Timezone    string
	WeekStart   string
	MaxVisible  int
	CatalogPath string
	Policy      string

	loc     *time.Location
	weekday time.Weekday
	catalog config.Catalog
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "calendarctl",
		Short:        "Lay out calendar events from a local store or a JSON file",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Import events and print this month's layout
  calendarctl events import events.json
  calendarctl layout --view month --date 2024-05-15

  # Render a week as a terminal grid
  calendarctl --format grid layout --view week --date 2024-05-15

  # Lay out a file without touching the store
  calendarctl layout --view day --date 2024-05-14 --events events.json
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn})))
		return app.resolve()
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", envOr("CALENDARCTL_DB", defaultDBPath()), "Path to the sqlite event store")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CALENDARCTL_FORMAT", FormatJSON), "Output format (json|grid)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Timezone, "tz", envOr("CALENDAR_TIMEZONE", "Local"), "IANA timezone for day boundaries")
	cmd.PersistentFlags().StringVar(&app.WeekStart, "week-start", envOr("CALENDAR_WEEK_START", "sunday"), "First day of the week")
	cmd.PersistentFlags().IntVar(&app.MaxVisible, "max-visible", calendar.DefaultMaxVisible, "Badges shown per month cell before \"more\"")
	cmd.PersistentFlags().StringVar(&app.CatalogPath, "catalog", envOr("CALENDAR_CATALOG_PATH", ""), "YAML calendar type catalog")
	cmd.PersistentFlags().StringVar(&app.Policy, "malformed", "coerce", "Malformed event policy (coerce|drop)")

	cmd.AddCommand(newLayoutCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newHolidaysCmd(app))

	return cmd
}

func (app *App) resolve() error {
	switch app.Format {
	case FormatJSON, FormatGrid:
	default:
		return fmt.Errorf("unknown format %q (json|grid)", app.Format)
	}

	loc, err := time.LoadLocation(app.Timezone)
	if err != nil {
		return fmt.Errorf("invalid --tz: %w", err)
	}
	app.loc = loc

	if app.weekday, err = config.ParseWeekday(app.WeekStart); err != nil {
		return fmt.Errorf("invalid --week-start: %w", err)
	}

	app.catalog = config.DefaultCatalog()
	if app.CatalogPath != "" {
		if app.catalog, err = config.LoadCatalog(app.CatalogPath); err != nil {
			return err
		}
	}
	return nil
}

func (app *App) engine() *calendarService.Engine {
	return calendarService.NewEngine(calendarService.Options{
		MaxVisible:   app.MaxVisible,
		WeekStart:    app.weekday,
		VisibleHours: app.catalog.VisibleHours,
		WorkingHours: app.catalog.Working(),
		Location:     app.loc,
	})
}

// openService opens the store and builds a calendar service over it. The
// caller closes the store.
func (app *App) openService(ctx context.Context) (calendar.CalendarService, *sqlite.Store, error) {
	store, err := sqlite.Open(ctx, app.DBPath, app.loc)
	if err != nil {
		return nil, nil, err
	}
	svc, err := app.newService(store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return svc, store, nil
}

// newService builds the calendar service. A nil store leaves only the pure
// layout operations usable.
func (app *App) newService(store *sqlite.Store) (calendar.CalendarService, error) {
	policy, err := calendarService.ParseMalformedPolicy(app.Policy)
	if err != nil {
		return nil, err
	}

	var (
		eventRepo   calendar.EventRepository
		holidayRepo calendar.HolidayRepository
		userRepo    calendar.UserRepository
		tx          calendarService.Transactor
	)
	if store != nil {
		eventRepo, holidayRepo, userRepo, tx = store.Events(), store.Holidays(), store.Users(), store
	}

	return calendarService.NewCalendarService(
		eventRepo,
		holidayRepo,
		userRepo,
		tx,
		nil,
		app.engine(),
		app.catalog,
		calendarService.Config{
			Policy:        policy,
			VacationHours: app.catalog.VacationHours,
		},
	), nil
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "calendar.sqlite"
	}
	return filepath.Join(dir, "calendarctl", "calendar.sqlite")
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
