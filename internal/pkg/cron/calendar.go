package cron

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

const (
	JobSyncHolidayFeed  = "sync_holiday_feed"
	JobPurgeLayoutCache = "purge_layout_cache"
)

type CalendarJobs struct {
	calendarSvc calendar.CalendarService
	syncSpec    string
	purgeSpec   string
}

func NewCalendarJobs(calendarSvc calendar.CalendarService, syncSpec, purgeSpec string) *CalendarJobs {
	if syncSpec == "" {
		syncSpec = "0 3 * * *"
	}
	if purgeSpec == "" {
		purgeSpec = "@hourly"
	}
	return &CalendarJobs{
		calendarSvc: calendarSvc,
		syncSpec:    syncSpec,
		purgeSpec:   purgeSpec,
	}
}

func (j *CalendarJobs) RegisterJobs(scheduler *Scheduler) error {
	if err := scheduler.AddJob(JobSyncHolidayFeed, j.syncSpec, j.SyncHolidayFeed); err != nil {
		return err
	}
	return scheduler.AddJob(JobPurgeLayoutCache, j.purgeSpec, j.PurgeLayoutCache)
}

// SyncHolidayFeed is a no-op when no feed URL is configured.
func (j *CalendarJobs) SyncHolidayFeed(ctx context.Context) error {
	slog.Info("Cron: Starting holiday feed sync")
	err := j.calendarSvc.SyncHolidayFeed(ctx)
	if errors.Is(err, calendar.ErrHolidayFeedDisabled) {
		slog.Info("Cron: Holiday feed not configured, skipping")
		return nil
	}
	return err
}

func (j *CalendarJobs) PurgeLayoutCache(ctx context.Context) error {
	return j.calendarSvc.PurgeLayoutCache(ctx)
}
