package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/studypilot/backend/internal/api/handlers"
	"github.com/studypilot/backend/internal/api/middleware"
	"github.com/studypilot/backend/internal/artifact"
	"github.com/studypilot/backend/internal/auth"
	"github.com/studypilot/backend/internal/config"
	"github.com/studypilot/backend/internal/document"
	"github.com/studypilot/backend/internal/queue"
	"github.com/studypilot/backend/internal/storage"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	jwt   *auth.JWTMiddleware
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	store := storage.NewSupabaseStorage(rt.cfg.Storage.SupabaseURL, rt.cfg.Storage.SupabaseKey)
	docSvc := document.NewService(rt.db, store, rt.cfg.Storage.Bucket)
	artifactStore := artifact.NewStore(rt.db)
	queueClient := queue.NewClient(rt.cfg.Redis)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		docH := handlers.NewDocumentHandler(docSvc)
		genH := handlers.NewGenerationHandler(docSvc, queueClient)
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", docH.Upload)
			r.Get("/", docH.List)
			r.Get("/{id}", docH.Get)
			r.Delete("/{id}", docH.Delete)
			r.Get("/{id}/status", docH.Status)
			r.Post("/{id}/generate", genH.Generate)
		})

		artH := handlers.NewArtifactHandler(artifactStore)
		r.Get("/flashcards", artH.ListFlashcards)
		r.Get("/quizzes", artH.ListQuizQuestions)
	})

	return r
}
