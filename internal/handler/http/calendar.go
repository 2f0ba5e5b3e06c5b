package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
	"github.com/lshdainty/porest-hr-front-sub002/internal/handler/http/response"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/jwt"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/validator"
)

const (
	maxICSBodySize  = 5 << 20
	maxJSONBodySize = 1 << 20
)

type CalendarHandler interface {
	// Layout
	Layout(w http.ResponseWriter, r *http.Request)
	ComputeLayout(w http.ResponseWriter, r *http.Request)

	// Events
	ListEvents(w http.ResponseWriter, r *http.Request)
	CreateEvent(w http.ResponseWriter, r *http.Request)
	DeleteEvent(w http.ResponseWriter, r *http.Request)

	// Holidays
	ListHolidays(w http.ResponseWriter, r *http.Request)
	ImportHolidays(w http.ResponseWriter, r *http.Request)

	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
	jwtService      jwt.Service
}

func NewCalendarHandler(calendarService calendar.CalendarService, jwtService jwt.Service) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
		jwtService:      jwtService,
	}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	userID, _ := jwt.UserIDFromClaims(claims)
	return userID
}

// getHourQueryParam reads an optional hour. Non-numeric values are reported
// as validation errors.
func getHourQueryParam(r *http.Request, key string, errs *validator.ValidationErrors) *int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		*errs = append(*errs, validator.ValidationError{
			Field:   key,
			Message: key + " must be a number",
		})
		return nil
	}
	return &n
}

// decodeJSON reads a bounded JSON body into dst. Oversized bodies and domain
// errors raised while decoding keep their meaning; anything else is a
// malformed body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	err := json.NewDecoder(body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge),
		errors.Is(err, calendar.ErrInvalidSelection),
		errors.Is(err, calendar.ErrUnknownEventKind),
		errors.Is(err, calendar.ErrInvalidInterval):
		response.HandleError(w, err)
	default:
		response.BadRequest(w, "Invalid request body", nil)
	}
	return false
}

// Layout implements CalendarHandler.
func (h *calendarHandlerImpl) Layout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var errs validator.ValidationErrors
	req := calendar.LayoutRequest{
		View:    q.Get("view"),
		Date:    q.Get("date"),
		UserIDs: calendar.ParseSelection(q.Get("users")),
		TypeIDs: calendar.ParseSelection(q.Get("types")),
		From:    getHourQueryParam(r, "from", &errs),
		To:      getHourQueryParam(r, "to", &errs),
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.calendarService.Layout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ComputeLayout implements CalendarHandler.
func (h *calendarHandlerImpl) ComputeLayout(w http.ResponseWriter, r *http.Request) {
	var req calendar.ComputeLayoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.calendarService.ComputeLayout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEvents implements CalendarHandler.
func (h *calendarHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	req := calendar.PeriodRequest{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}

	events, err := h.calendarService.ListEvents(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, events, response.PeriodMeta(events, req.StartDate, req.EndDate))
}

// CreateEvent implements CalendarHandler. user_id defaults to the caller.
func (h *calendarHandlerImpl) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		req.UserID = getUserIDFromContext(r)
	}

	event, err := h.calendarService.CreateEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event created successfully", event)
}

// DeleteEvent implements CalendarHandler.
func (h *calendarHandlerImpl) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.calendarService.DeleteEvent(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event deleted", nil)
}

// ListHolidays implements CalendarHandler.
func (h *calendarHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	req := calendar.PeriodRequest{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}

	holidays, err := h.calendarService.ListHolidays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, holidays, response.PeriodMeta(holidays, req.StartDate, req.EndDate))
}

// ImportHolidays implements CalendarHandler. The body is an iCalendar feed.
func (h *calendarHandlerImpl) ImportHolidays(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxICSBodySize)
	defer body.Close()

	result, err := h.calendarService.ImportHolidays(r.Context(), body)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holidays imported", result)
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *calendarHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, calendar.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes calendar invalidations over SSE.
func (h *calendarHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, the token comes in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.calendarService.Subscribe(r.Context(), userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
