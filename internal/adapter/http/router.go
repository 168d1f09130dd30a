package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/roomledger/internal/adapter/http/handler"
	"github.com/iho/roomledger/internal/adapter/http/middleware"
	"github.com/iho/roomledger/internal/infrastructure/auth"
	"github.com/iho/roomledger/internal/infrastructure/metrics"
	"github.com/iho/roomledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	HouseHandler        *handler.HouseHandler
	ExpenseHandler      *handler.ExpenseHandler
	SettlementHandler   *handler.SettlementHandler
	BalanceHandler      *handler.BalanceHandler
	ChoreHandler        *handler.ChoreHandler
	EventHandler        *handler.EventHandler
	LeaderboardHandler  *handler.LeaderboardHandler
	NotificationHandler *handler.NotificationHandler
	ParseHandler        *handler.ParseHandler
	AuthHandler         *handler.AuthHandler
	HealthHandler       *handler.HealthHandler
	IdempotencyStore    usecase.IdempotencyStore
	JWTManager          *auth.JWTManager
	Logger              zerolog.Logger
	Metrics             *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		if cfg.AuthHandler != nil {
			r.Post("/auth/token", cfg.AuthHandler.IssueToken)
		}

		r.Group(func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.Auth(cfg.JWTManager))
			}

			// Houses
			r.Route("/houses", func(r chi.Router) {
				r.Post("/", cfg.HouseHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.HouseHandler.Get)
					r.Put("/settings", cfg.HouseHandler.UpdateSettings)

					r.Post("/members", cfg.HouseHandler.AddMember)
					r.Get("/members", cfg.HouseHandler.ListMembers)

					r.Post("/rules", cfg.HouseHandler.CreateRule)
					r.Get("/rules", cfg.HouseHandler.ListRules)
					r.Put("/rules/{ruleID}", cfg.HouseHandler.UpdateRule)
					r.Delete("/rules/{ruleID}", cfg.HouseHandler.DeleteRule)

					r.Post("/expenses", cfg.ExpenseHandler.CreateBatch)
					r.Get("/expenses/batches/{batchID}", cfg.ExpenseHandler.ListByBatch)

					r.Post("/settlements", cfg.SettlementHandler.Settle)
					r.Post("/settlements/convert", cfg.SettlementHandler.ConvertInKind)
					r.Get("/settlements", cfg.SettlementHandler.List)
					r.Get("/settlements/{settlementID}", cfg.SettlementHandler.Get)

					r.Get("/balances", cfg.BalanceHandler.House)
					r.Get("/balances/pairwise", cfg.BalanceHandler.Pairwise)
					r.Get("/balances/affordable", cfg.BalanceHandler.MaxAffordable)
					r.Get("/balances/consistency", cfg.BalanceHandler.Consistency)

					r.Post("/chores", cfg.ChoreHandler.Create)
					r.Get("/chores", cfg.ChoreHandler.List)
					r.Post("/chores/sweep", cfg.ChoreHandler.SweepOverdue)
					r.Post("/chores/{choreID}/complete", cfg.ChoreHandler.Complete)

					r.Post("/events", cfg.EventHandler.Create)
					r.Get("/events", cfg.EventHandler.List)
					r.Post("/events/{eventID}/rsvp", cfg.EventHandler.RSVP)
					r.Post("/events/{eventID}/bill", cfg.EventHandler.Bill)

					r.Get("/leaderboard", cfg.LeaderboardHandler.Standings)
					r.Post("/nudges", cfg.LeaderboardHandler.Nudge)
				})
			})

			// Notifications
			r.Route("/users/{userID}/notifications", func(r chi.Router) {
				r.Get("/", cfg.NotificationHandler.List)
				r.Get("/unread", cfg.NotificationHandler.UnreadCount)
				r.Post("/{notificationID}/read", cfg.NotificationHandler.MarkRead)
				r.Delete("/read", cfg.NotificationHandler.ClearRead)
				r.Delete("/", cfg.NotificationHandler.ClearAll)
			})

			// Parsing
			if cfg.ParseHandler != nil {
				r.Post("/parse/text", cfg.ParseHandler.Text)
				r.Post("/parse/receipt", cfg.ParseHandler.Receipt)
			}
		})
	})

	return r
}
