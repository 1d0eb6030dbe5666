// Package api assembles the HTTP surface: middleware, routes, handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/lifebloodops/assistant/internal/api/handlers"
	"github.com/lifebloodops/assistant/internal/api/middleware"
	"github.com/lifebloodops/assistant/internal/cache"
	"github.com/lifebloodops/assistant/internal/config"
	"github.com/lifebloodops/assistant/internal/queue"
	"github.com/lifebloodops/assistant/internal/rag"
)

// Deps carries everything the router needs. Pool, Redis, and Queue are
// optional; the handlers degrade gracefully without them.
type Deps struct {
	Pipeline *rag.Pipeline
	Answers  *cache.AnswerCache
	Queue    *queue.Client
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Config   *config.Config
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	health := handlers.NewHealthHandler(deps.DB, deps.Redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	askH := handlers.NewAskHandler(deps.Pipeline, deps.Answers)
	searchH := handlers.NewSearchHandler(deps.Pipeline)
	statusH := handlers.NewStatusHandler(deps.Pipeline)
	ingestH := handlers.NewIngestHandler(deps.Pipeline, deps.Answers, deps.Queue, deps.Config.RAG.DocsDir)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ask", askH.Ask)
		r.Post("/search", searchH.Search)
		r.Post("/ingest", ingestH.Ingest)
		r.Get("/status", statusH.Status)
	})

	return r
}
