package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/indepthg/gita-qa/internal/handlers"
	"github.com/indepthg/gita-qa/internal/indexer"
	"github.com/indepthg/gita-qa/internal/jobs"
	"github.com/indepthg/gita-qa/internal/qa"
	"github.com/indepthg/gita-qa/internal/storage"
	"github.com/indepthg/gita-qa/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine          qa.Engine
	VerseRepo       storage.VerseStore
	RegenRunner     *jobs.Runner
	IndexerPipeline *indexer.Pipeline       // nil disables background embedding on ingest
	VectorStore     vectorstore.VectorStore // nil disables the vector store health check
	CollectionName  string
	Suggestions     []string
	IndexHTML       string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Engine)
	verseHandler := handlers.NewVerseHandler(deps.VerseRepo)
	suggestHandler := handlers.NewSuggestHandler(deps.Suggestions)
	ingestHandler := handlers.NewIngestHandler(deps.VerseRepo, deps.IndexerPipeline)
	regenHandler := handlers.NewRegenHandler(deps.RegenRunner)
	healthHandler := handlers.NewHealthHandler(deps.VerseRepo, deps.VectorStore, deps.CollectionName)
	statsHandler := handlers.NewStatsHandler(deps.VerseRepo, deps.VectorStore != nil, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodGet, "/suggest", suggestHandler)
		r.Get("/title/{chapter}/{verse}", verseHandler.Title)

		r.Route("/admin", func(r chi.Router) {
			r.Method(http.MethodPost, "/ingest", ingestHandler)
			r.Post("/regen", regenHandler.Start)
			r.Get("/regen/status", regenHandler.Status)
			r.Post("/regen/cancel", regenHandler.Cancel)
		})

		r.Route("/debug", func(r chi.Router) {
			r.Get("/verse/{chapter}/{verse}", verseHandler.Verse)
			r.Method(http.MethodGet, "/stats", statsHandler)
		})
	})

	r.Method(http.MethodGet, "/api/health", healthHandler)

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
