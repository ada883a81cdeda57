package http

import (
	"net/http"
	"time"

	"github.com/mockmate/mockmate/internal/auth"
	"github.com/mockmate/mockmate/internal/interview"
	"github.com/mockmate/mockmate/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Service     *interview.Service
	Questions   interview.QuestionStore
	Users       *auth.UserRepo
	Auth        *auth.AuthService
	Logger      *zap.Logger
	CORSOrigins []string
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(RequestLogger(deps.Logger))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })
	r.Handle("/metrics", metrics.Handler())

	r.Post("/auth/register", auth.RegisterHandler(deps.Users, deps.Auth))
	r.Post("/auth/login", auth.LoginHandler(deps.Users, deps.Auth))
	r.Post("/auth/logout", auth.LogoutHandler())

	// Everything session- or catalog-facing requires a resolved identity.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(deps.Auth))

		pr.Get("/categories", ListCategoriesHandler(deps.Questions))
		pr.Get("/questions", ListQuestionsHandler(deps.Questions))

		pr.Post("/interviews", StartInterviewHandler(deps.Service))
		pr.Get("/interviews", HistoryHandler(deps.Service))
		pr.Route("/interviews/{sessionID}", func(sr chi.Router) {
			sr.Get("/", SessionDetailHandler(deps.Service))
			sr.Post("/answers", SubmitAnswerHandler(deps.Service))
			sr.Post("/complete", CompleteInterviewHandler(deps.Service))
		})
	})

	return r
}
