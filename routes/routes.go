package routes

import (
	"net/http"

	_ "github.com/Dosada05/swiss-tournament/docs"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router chi.Router,
	allowedOrigins []string,
	tokenParser middleware.TokenParser,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	organizerOnly := func(r chi.Router) {
		r.Use(middleware.Authenticate(tokenParser))
		r.Use(middleware.Authorize(models.RoleOrganizer))
	}

	router.Get("/healthz", tournamentHandler.HealthHandler)
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/ws", webSocketHandler.ServeWs)

	router.Post("/auth/token", authHandler.IssueToken)

	router.Get("/tournament", tournamentHandler.SummaryHandler)
	router.Get("/pairings", tournamentHandler.PairingsHandler)

	router.Route("/players", func(r chi.Router) {
		r.Get("/count", tournamentHandler.CountPlayersHandler)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/", tournamentHandler.RegisterPlayerHandler)
			r.Delete("/", tournamentHandler.ClearPlayersHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListMatchesHandler)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/", tournamentHandler.ReportMatchHandler)
			r.Delete("/", tournamentHandler.ClearMatchesHandler)
		})
	})

	router.Route("/standings", func(r chi.Router) {
		r.Get("/", tournamentHandler.StandingsHandler)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/snapshots", tournamentHandler.ExportStandingsHandler)
		})
	})
}
