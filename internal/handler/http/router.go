package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/lshdainty/porest-hr-front-sub002/internal/config"
	"github.com/lshdainty/porest-hr-front-sub002/internal/handler/http/middleware"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/jwt"
)

func NewRouter(cfg *config.Config, JWTService jwt.Service, calendarHandler CalendarHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// EventSource authenticates with the short-lived query token
		r.Get("/calendar/stream", calendarHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/layout", calendarHandler.Layout)
				r.Post("/layout", calendarHandler.ComputeLayout)
				r.Get("/period", calendarHandler.ListEvents)
				r.Get("/sse-token", calendarHandler.GetSSEToken)

				r.Route("/events", func(r chi.Router) {
					r.Post("/", calendarHandler.CreateEvent)
					r.Delete("/{id}", calendarHandler.DeleteEvent)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", calendarHandler.ListHolidays)
				r.Post("/import", calendarHandler.ImportHolidays)
			})
		})
	})
	return r
}
