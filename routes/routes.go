package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/naeemnh/tournamint-api/docs"
	"github.com/naeemnh/tournamint-api/handlers"
	"github.com/naeemnh/tournamint-api/middleware"
	"github.com/naeemnh/tournamint-api/models"
)

// SetupRoutes wires every endpoint onto the router. Read endpoints are
// public; anything that mutates tournament state requires a token, and
// organizer-only actions additionally require the organizer role.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	bracketHandler *handlers.BracketHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.RegisterHandler)
	router.Post("/auth/login", authHandler.LoginHandler)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/categories", tournamentHandler.ListCategoriesHandler)
		r.Get("/{tournamentID}/participants", tournamentHandler.ListParticipantsHandler)
		r.Get("/{tournamentID}/bracket", bracketHandler.GetHandler)
		r.Get("/{tournamentID}/matches", matchHandler.ListHandler)
		r.Get("/{tournamentID}/standings", standingsHandler.GetHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/{tournamentID}/participants", tournamentHandler.RegisterParticipantHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(models.RoleOrganizer))

			r.Post("/", tournamentHandler.CreateHandler)
			r.Put("/{tournamentID}", tournamentHandler.UpdateHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogoHandler)
			r.Post("/{tournamentID}/categories", tournamentHandler.CreateCategoryHandler)
			r.Put("/{tournamentID}/participants/{participantID}/status", tournamentHandler.UpdateParticipantStatusHandler)
			r.Post("/{tournamentID}/bracket", bracketHandler.GenerateHandler)
			r.Post("/{tournamentID}/standings/recalculate", standingsHandler.RecalculateHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(models.RoleOrganizer))

			r.Put("/{matchID}/result", matchHandler.SubmitResultHandler)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Get("/docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(docs.OpenAPISpec)
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/openapi.json"),
	))
}
