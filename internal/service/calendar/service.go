package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/holiday"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/sse"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/validator"
)

// TypeCatalog resolves the configured calendar types.
type TypeCatalog interface {
	Type(id string) (calendar.EventType, bool)
	TypeIDs() []string
}

// Transactor runs fn in a transaction. Repositories called with the ctx
// passed to fn join it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config tunes the service. VacationHours gives the default hours per
// vacation type id. Clock defaults to time.Now.
type Config struct {
	Policy         MalformedPolicy
	MemoSize       int
	HolidayFeedURL string
	HolidayCountry string
	VacationHours  map[string]float64
	HTTPClient     *http.Client
	Clock          func() time.Time
}

type service struct {
	eventRepo   calendar.EventRepository
	holidayRepo calendar.HolidayRepository
	userRepo    calendar.UserRepository
	tx          Transactor
	hub         *sse.Hub
	engine      *Engine
	catalog     TypeCatalog
	memo        *Memo[calendar.ViewLayout]
	config      Config
}

func NewCalendarService(
	eventRepo calendar.EventRepository,
	holidayRepo calendar.HolidayRepository,
	userRepo calendar.UserRepository,
	tx Transactor,
	hub *sse.Hub,
	engine *Engine,
	catalog TypeCatalog,
	cfg Config,
) calendar.CalendarService {
	if cfg.Policy == "" {
		cfg.Policy = PolicyCoerce
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = holiday.NewHTTPClient(30 * time.Second)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if hub == nil {
		hub = sse.NewHub()
	}
	return &service{
		eventRepo:   eventRepo,
		holidayRepo: holidayRepo,
		userRepo:    userRepo,
		tx:          tx,
		hub:         hub,
		engine:      engine,
		catalog:     catalog,
		memo:        NewMemo[calendar.ViewLayout](cfg.MemoSize),
		config:      cfg,
	}
}

func (s *service) location() *time.Location {
	return s.engine.Options().Location
}

func (s *service) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTx(ctx, fn)
}

// layoutInput is everything a layout pass depends on. Its hash is the memo
// key.
type layoutInput struct {
	Events       []calendar.Event
	Filter       calendar.Filter
	View         calendar.View
	Date         string
	VisibleHours *calendar.HourRange
	Holidays     []calendar.Holiday
}

func (s *service) run(in layoutInput, anchor time.Time) (calendar.LayoutResponse, error) {
	key, err := ContentKey(in)
	if err != nil {
		return calendar.LayoutResponse{}, fmt.Errorf("failed to hash layout input: %w", err)
	}

	layout, cached := s.memo.Do(key, func() calendar.ViewLayout {
		return s.engine.Layout(in.Events, in.Filter, ViewContext{
			Date:         anchor,
			View:         in.View,
			VisibleHours: in.VisibleHours,
			Holidays:     holiday.NewIndex(in.Holidays),
		})
	})
	// The clock stays out of the key; the grid is marked per request.
	return calendar.LayoutResponse{Layout: s.engine.MarkNow(layout, s.config.Clock()), Cached: cached}, nil
}

func (s *service) ingest(events []calendar.Event) []calendar.Event {
	valid, rejected := Ingest(events, IngestOptions{Policy: s.config.Policy, Location: s.location()})
	if len(rejected) > 0 {
		slog.Warn("Malformed calendar events", "count", len(rejected), "policy", s.config.Policy, "first_id", rejected[0].ID)
	}
	return valid
}

func (s *service) Layout(ctx context.Context, req calendar.LayoutRequest) (calendar.LayoutResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.LayoutResponse{}, err
	}

	loc := s.location()
	view, err := calendar.ParseView(req.View)
	if err != nil {
		return calendar.LayoutResponse{}, err
	}
	anchor, err := req.Anchor(loc)
	if err != nil {
		return calendar.LayoutResponse{}, err
	}
	rangeStart, rangeEnd := ViewRange(view, anchor, s.engine.Options().WeekStart)

	raw, err := s.eventRepo.ListByPeriod(ctx, rangeStart, rangeEnd)
	if err != nil {
		return calendar.LayoutResponse{}, err
	}
	events := s.ingest(ExpandRecurring(raw, rangeStart, rangeEnd))

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return calendar.LayoutResponse{}, err
	}
	filter := req.Filter()
	filter.Users = CollapseSelection(filter.Users, UserIDs(users))
	filter.Types = CollapseSelection(filter.Types, s.catalog.TypeIDs())

	holidays, err := s.holidayRepo.ListByPeriod(ctx, calendar.DateKey(rangeStart), calendar.DateKey(rangeEnd))
	if err != nil {
		return calendar.LayoutResponse{}, err
	}

	return s.run(layoutInput{
		Events:       events,
		Filter:       filter,
		View:         view,
		Date:         req.Date,
		VisibleHours: req.VisibleHours(s.engine.Options().VisibleHours),
		Holidays:     holidays,
	}, anchor)
}

// ComputeLayout lays out caller supplied events without touching storage.
func (s *service) ComputeLayout(ctx context.Context, req calendar.ComputeLayoutRequest) (calendar.LayoutResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.LayoutResponse{}, err
	}

	view, err := calendar.ParseView(req.View)
	if err != nil {
		return calendar.LayoutResponse{}, err
	}
	anchor, err := req.Anchor(s.location())
	if err != nil {
		return calendar.LayoutResponse{}, err
	}
	rangeStart, rangeEnd := ViewRange(view, anchor, s.engine.Options().WeekStart)
	events := s.ingest(ExpandRecurring(req.Events, rangeStart, rangeEnd))

	users := req.Users
	if len(users) == 0 {
		users = usersOf(events)
	}
	filter := req.Filter()
	filter.Users = CollapseSelection(filter.Users, UserIDs(users))
	filter.Types = CollapseSelection(filter.Types, s.catalog.TypeIDs())

	return s.run(layoutInput{
		Events:       events,
		Filter:       filter,
		View:         view,
		Date:         req.Date,
		VisibleHours: req.VisibleHours(s.engine.Options().VisibleHours),
		Holidays:     req.Holidays,
	}, anchor)
}

func usersOf(events []calendar.Event) []calendar.User {
	seen := make(map[string]bool)
	users := make([]calendar.User, 0)
	for _, ev := range events {
		if ev.User.ID == "" || seen[ev.User.ID] {
			continue
		}
		seen[ev.User.ID] = true
		users = append(users, ev.User)
	}
	return users
}

func (s *service) ListEvents(ctx context.Context, req calendar.PeriodRequest) ([]calendar.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end := req.Bounds(s.location())
	raw, err := s.eventRepo.ListByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	events := sortedByStart(SelectEventsInRange(s.ingest(ExpandRecurring(raw, start, end)), start, end))
	resp := make([]calendar.EventResponse, 0, len(events))
	for _, ev := range events {
		resp = append(resp, calendar.NewEventResponse(ev))
	}
	return resp, nil
}

func (s *service) CreateEvent(ctx context.Context, req calendar.CreateEventRequest) (calendar.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.EventResponse{}, err
	}

	typ, ok := s.catalog.Type(req.TypeID)
	if !ok {
		return calendar.EventResponse{}, calendar.ErrCalendarTypeNotFound
	}
	if req.RRule != "" {
		if typ.Kind != calendar.KindSchedule {
			return calendar.EventResponse{}, validator.ValidationErrors{{
				Field:   "rrule",
				Message: "rrule is only allowed on schedule types",
			}}
		}
		if err := ValidateRRule(req.RRule); err != nil {
			return calendar.EventResponse{}, err
		}
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return calendar.EventResponse{}, err
	}

	loc := s.location()
	start, _ := validator.IsValidDateTime(req.StartDate)
	end, _ := validator.IsValidDateTime(req.EndDate)
	if typ.IsAllDay {
		start = StartOfDay(start.In(loc))
		end = EndOfDay(end.In(loc))
	}

	ev := calendar.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Start:       start,
		End:         end,
		User:        user,
		Type:        typ,
		Description: req.Description,
		Payload:     s.payloadFor(typ, req, start),
	}
	if err := ev.Validate(); err != nil {
		return calendar.EventResponse{}, err
	}

	var created calendar.Event
	err = s.withinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.eventRepo.Create(ctx, ev)
		return err
	})
	if err != nil {
		return calendar.EventResponse{}, err
	}

	s.invalidate("event.created", created.Start, created.End)
	slog.Info("Calendar event created", "event_id", created.ID, "user_id", user.ID, "type", typ.ID)
	return calendar.NewEventResponse(created), nil
}

func (s *service) payloadFor(typ calendar.EventType, req calendar.CreateEventRequest, start time.Time) calendar.Payload {
	switch typ.Kind {
	case calendar.KindVacation:
		p := calendar.VacationPayload{VacationType: req.VacationType, Hours: req.Hours}
		if p.VacationType == "" {
			p.VacationType = typ.ID
		}
		if p.Hours == 0 {
			p.Hours = s.config.VacationHours[typ.ID]
		}
		return p
	case calendar.KindHoliday:
		return calendar.HolidayPayload{HolidayType: calendar.HolidayTypePublic, DateKey: calendar.DateKey(start.In(s.location()))}
	default:
		return calendar.SchedulePayload{Location: req.Location, RRule: req.RRule}
	}
}

func (s *service) DeleteEvent(ctx context.Context, id string) error {
	var deleted calendar.Event
	err := s.withinTx(ctx, func(ctx context.Context) error {
		ev, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		deleted = ev
		return s.eventRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate("event.deleted", deleted.Start, deleted.End)
	slog.Info("Calendar event deleted", "event_id", id)
	return nil
}

func (s *service) ListHolidays(ctx context.Context, req calendar.PeriodRequest) ([]calendar.Holiday, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, end := req.Bounds(s.location())
	return s.holidayRepo.ListByPeriod(ctx, calendar.DateKey(start), calendar.DateKey(end))
}

func (s *service) ImportHolidays(ctx context.Context, r io.Reader) (calendar.ImportHolidaysResponse, error) {
	holidays, err := holiday.ParseICS(r, holiday.ParseOptions{
		Country:  s.config.HolidayCountry,
		Location: s.location(),
	})
	if err != nil {
		return calendar.ImportHolidaysResponse{}, err
	}

	var imported int
	err = s.withinTx(ctx, func(ctx context.Context) error {
		var err error
		imported, err = s.holidayRepo.Upsert(ctx, holidays)
		return err
	})
	if err != nil {
		return calendar.ImportHolidaysResponse{}, err
	}

	s.memo.Purge()
	if first, last, ok := holidaySpan(holidays, s.location()); ok {
		s.invalidate("holidays.imported", first, last)
	}
	slog.Info("Holidays imported", "count", imported, "parsed", len(holidays))
	return calendar.ImportHolidaysResponse{Imported: imported}, nil
}

func holidaySpan(holidays []calendar.Holiday, loc *time.Location) (first, last time.Time, ok bool) {
	for _, h := range holidays {
		d, err := time.ParseInLocation(calendar.DateKeyLayout, calendar.NormalizeDateKey(h.DateKey), loc)
		if err != nil {
			continue
		}
		if !ok || d.Before(first) {
			first = d
		}
		if !ok || d.After(last) {
			last = d
		}
		ok = true
	}
	return first, last, ok
}

func (s *service) SyncHolidayFeed(ctx context.Context) error {
	if s.config.HolidayFeedURL == "" {
		return calendar.ErrHolidayFeedDisabled
	}

	body, err := holiday.Fetch(ctx, s.config.HTTPClient, s.config.HolidayFeedURL)
	if err != nil {
		return err
	}
	resp, err := s.ImportHolidays(ctx, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sync holiday feed: %w", err)
	}
	slog.Info("Holiday feed synced", "url", s.config.HolidayFeedURL, "imported", resp.Imported)
	return nil
}

// Subscribe streams invalidation events to userID until ctx ends.
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan calendar.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan calendar.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if data, ok := event.Data.(calendar.InvalidationEvent); ok {
					select {
					case out <- calendar.SSEEvent{Event: event.Event, Data: data}:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

func (s *service) PurgeLayoutCache(ctx context.Context) error {
	stats := s.memo.Stats()
	n := s.memo.Purge()
	slog.Info("Layout cache purged", "entries", n, "hits", stats.Hits, "misses", stats.Misses)
	return nil
}

// invalidate drops cached layouts and tells every subscriber which range
// changed.
func (s *service) invalidate(reason string, start, end time.Time) {
	s.memo.Purge()
	loc := s.location()
	delivered := s.hub.Broadcast(sse.Event{
		Event: calendar.EventCalendarInvalidated,
		Data: calendar.InvalidationEvent{
			Reason:     reason,
			RangeStart: start.In(loc).Format(calendar.DayLayout),
			RangeEnd:   end.In(loc).Format(calendar.DayLayout),
		},
	})
	slog.Debug("Calendar invalidation sent",
		"reason", reason, "delivered", delivered, "subscribers", s.hub.TotalSubscribers())
}
