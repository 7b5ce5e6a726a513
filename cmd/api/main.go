package main

import (
	"context"
	_ "embed"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/indepthg/gita-qa/internal/config"
	"github.com/indepthg/gita-qa/internal/http"
	"github.com/indepthg/gita-qa/internal/indexer"
	"github.com/indepthg/gita-qa/internal/jobs"
	"github.com/indepthg/gita-qa/internal/llm"
	"github.com/indepthg/gita-qa/internal/qa"
	"github.com/indepthg/gita-qa/internal/storage"
	"github.com/indepthg/gita-qa/internal/vectorstore"
)

//go:embed index.html
var indexHTML string

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	verseRepo := storage.NewVerseRepo(db)
	canonRepo := storage.NewCanonicalRepo(db)

	ctx := context.Background()

	// LLM client for answer generation
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	if cfg.LLMPreloadModel {
		loader := llm.NewModelLoader(cfg.LLMBaseURL)
		if err := loader.LoadModel(ctx, cfg.LLMModelName); err != nil {
			slog.Warn("Model preload failed, continuing with cold start", "model", cfg.LLMModelName, "error", err)
		} else {
			slog.Info("Model preloaded", "model", cfg.LLMModelName)
		}
	}

	// Semantic recall is optional: without QDRANT_URL the engine answers
	// from full-text search alone.
	var embedSearcher qa.EmbedSearcher
	var indexerPipeline *indexer.Pipeline
	var vectorStore vectorstore.VectorStore
	if cfg.QdrantURL != "" {
		qdrant, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		if err := qdrant.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

		// Validate embedding client vector size (fail-fast)
		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
		testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
		if err != nil {
			log.Fatalf("Failed to validate embedding client: %v", err)
		}
		if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
			log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
		}
		slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

		vectorStore = qdrant
		embedSearcher = vectorstore.NewVerseSearcher(qdrant, embedder, cfg.QdrantCollection)
		indexerPipeline = indexer.NewPipeline(embedder, qdrant, cfg.QdrantCollection, cfg.DefaultTopic)
	} else {
		slog.Info("Qdrant not configured, semantic recall disabled")
	}

	engineOpts := qa.DefaultOptions()
	engineOpts.NoMatchMessage = cfg.NoMatchMessage
	engineOpts.Tiers = cfg.AnswerTiers
	engineOpts.DefaultTopic = cfg.DefaultTopic
	engine := qa.NewEngine(verseRepo, canonRepo, embedSearcher, llmClient, engineOpts)
	slog.Info("Answer engine initialized", "tiers", cfg.AnswerTiers, "topic", cfg.DefaultTopic)

	regenRunner := jobs.NewRunner(verseRepo, canonRepo, llmClient, cfg.RegenPause)

	deps := &http.Deps{
		Engine:          engine,
		VerseRepo:       verseRepo,
		RegenRunner:     regenRunner,
		IndexerPipeline: indexerPipeline,
		VectorStore:     vectorStore,
		CollectionName:  cfg.QdrantCollection,
		Suggestions:     engineOpts.Suggestions,
		IndexHTML:       indexHTML,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
