package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/config"
	appHTTP "github.com/lshdainty/porest-hr-front-sub002/internal/handler/http"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/cron"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/database"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/jwt"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/sse"
	"github.com/lshdainty/porest-hr-front-sub002/internal/repository/postgresql"
	calendarService "github.com/lshdainty/porest-hr-front-sub002/internal/service/calendar"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	eventRepo := postgresql.NewCalendarEventRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	userRepo := postgresql.NewUserRepository(db)

	policy, err := calendarService.ParseMalformedPolicy(cfg.Calendar.MalformedPolicy)
	if err != nil {
		return err
	}
	catalog := cfg.Calendar.Catalog
	engine := calendarService.NewEngine(calendarService.Options{
		MaxVisible:   cfg.Calendar.MaxVisible,
		WeekStart:    cfg.Calendar.WeekStart,
		VisibleHours: catalog.VisibleHours,
		WorkingHours: catalog.Working(),
		Location:     cfg.Calendar.Location,
	})

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.SSEExpiration)
	calendarSvc := calendarService.NewCalendarService(
		eventRepo,
		holidayRepo,
		userRepo,
		postgresql.NewTransactor(db),
		hub,
		engine,
		catalog,
		calendarService.Config{
			Policy:         policy,
			MemoSize:       cfg.Calendar.MemoSize,
			HolidayFeedURL: cfg.Calendar.HolidayFeedURL,
			HolidayCountry: cfg.Calendar.HolidayCountry,
			VacationHours:  catalog.VacationHours,
		},
	)

	scheduler := cron.NewScheduler(cfg.Calendar.Location)
	jobs := cron.NewCalendarJobs(calendarSvc, cfg.Calendar.HolidaySyncSpec, cfg.Calendar.CachePurgeSpec)
	if err := jobs.RegisterJobs(scheduler); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc, JWTService)
	router := appHTTP.NewRouter(cfg, JWTService, calendarHandler)

	// Request contexts derive from ctx so open streams end on shutdown.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
