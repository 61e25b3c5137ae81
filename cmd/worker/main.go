package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"

	"github.com/studypilot/backend/internal/artifact"
	"github.com/studypilot/backend/internal/cache"
	"github.com/studypilot/backend/internal/config"
	"github.com/studypilot/backend/internal/database"
	"github.com/studypilot/backend/internal/document"
	"github.com/studypilot/backend/internal/generation"
	"github.com/studypilot/backend/internal/llm"
	"github.com/studypilot/backend/internal/notify"
	"github.com/studypilot/backend/internal/queue"
	"github.com/studypilot/backend/internal/queue/workers"
	"github.com/studypilot/backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Dependency graph for generation runs.
	store := storage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey)
	docSvc := document.NewService(db, store, cfg.Storage.Bucket)
	artifactStore := artifact.NewStore(db)

	ocr := document.NewOCRService()
	if !ocr.Available() {
		slog.Warn("tesseract not found, image documents will fail extraction")
	}
	extractor := document.NewExtractor(ocr)

	gateway := llm.NewGateway(cfg.LLM)
	generator := llm.NewGenerator(gateway, cfg.LLM.DefaultModel)

	emitter := notify.NewEmitter(rdb)
	defer emitter.Close()

	genSvc := generation.NewService(
		docSvc,
		artifactStore,
		extractor,
		generator,
		cache.NewCache(rdb),
		emitter,
		generation.Config{
			Model:          cfg.LLM.DefaultModel,
			Temperature:    cfg.Generation.Temperature,
			DefaultSubject: cfg.Generation.DefaultSubject,
		},
	)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()
	genWorker := workers.NewGenerationWorker(genSvc)
	registry.Register(queue.TypeArtifactGenerate, asynq.HandlerFunc(genWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 10)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}

func newLogger(format string) *slog.Logger {
	if format == "text" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
