// Command server wires every pipeline's dependencies with a dig
// container and serves the HTTP API of §6.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"

	"github.com/sghansard/hansardkb/internal/analytics"
	"github.com/sghansard/hansardkb/internal/concurrency"
	"github.com/sghansard/hansardkb/internal/config"
	"github.com/sghansard/hansardkb/internal/handler"
	"github.com/sghansard/hansardkb/internal/httpclient"
	"github.com/sghansard/hansardkb/internal/ingestion"
	"github.com/sghansard/hansardkb/internal/jobs"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/models/chat"
	"github.com/sghansard/hansardkb/internal/models/embedding"
	"github.com/sghansard/hansardkb/internal/moments"
	"github.com/sghansard/hansardkb/internal/rag"
	"github.com/sghansard/hansardkb/internal/store/keyword"
	"github.com/sghansard/hansardkb/internal/store/kv"
	"github.com/sghansard/hansardkb/internal/store/object"
	"github.com/sghansard/hansardkb/internal/store/relational"
	"github.com/sghansard/hansardkb/internal/store/vector"
	"github.com/sghansard/hansardkb/internal/tracing"
	"github.com/sghansard/hansardkb/internal/videomatch"
)

// chatModels carries the two named chat.Chat instances the moments and
// rag pipelines both need (primary platform model, Ollama fallback),
// the dig.In pattern for disambiguating two providers of the same
// interface type.
type chatModels struct {
	dig.In

	Primary  chat.Chat `name:"chatPrimary"`
	Fallback chat.Chat `name:"chatFallback"`
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("HANSARDKB_CONFIG_FILE"))
	if err != nil {
		logger.Errorf(ctx, "load config: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	shutdownTracing, err := tracing.Init(ctx)
	if err != nil {
		logger.Errorf(ctx, "init tracing: %v", err)
		os.Exit(1)
	}
	defer shutdownTracing(ctx)

	container := dig.New()
	mustProvide(container, func() *config.Config { return cfg })
	provideStores(container)
	provideModels(container)
	providePipelines(container)
	provideHandlers(container)

	if err := container.Invoke(func(cfg *config.Config) {
		if err := relational.Migrate(cfg.Store.Postgres.DSN, cfg.Store.Postgres.MigrationsPath); err != nil {
			logger.Errorf(ctx, "run migrations: %v", err)
		}
	}); err != nil {
		logger.Errorf(ctx, "migrate invoke: %v", err)
		os.Exit(1)
	}

	if err := container.Invoke(runServer); err != nil {
		logger.Errorf(ctx, "server invoke: %v", err)
		os.Exit(1)
	}
}

func mustProvide(container *dig.Container, constructor interface{}, opts ...dig.ProvideOption) {
	if err := container.Provide(constructor, opts...); err != nil {
		panic(err)
	}
}

func provideStores(container *dig.Container) {
	mustProvide(container, func(cfg *config.Config) *kv.Store {
		return kv.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
	})
	mustProvide(container, func(cfg *config.Config) (object.Store, error) {
		if cfg.Store.ObjectBackend == "cos" {
			return object.NewCOSStore(cfg.Store.COS.BucketURL, cfg.Store.COS.SecretID, cfg.Store.COS.SecretKey)
		}
		return object.NewMinIOStore(cfg.Store.MinIO.Endpoint, cfg.Store.MinIO.AccessKey, cfg.Store.MinIO.SecretKey, cfg.Store.MinIO.Bucket, cfg.Store.MinIO.UseSSL)
	})
	mustProvide(container, func(cfg *config.Config) (*relational.Store, error) {
		return relational.Open(cfg.Store.Postgres.DSN)
	})
	mustProvide(container, func(cfg *config.Config) (*vector.MomentIndex, error) {
		return vector.NewMomentIndex(cfg.Store.Qdrant.Addr, cfg.Store.Qdrant.MomentsCollection)
	})
	mustProvide(container, func(cfg *config.Config) (*keyword.Index, error) {
		return keyword.New(cfg.Store.Elastic.Addresses, cfg.Store.Elastic.MomentsIndex)
	})
	mustProvide(container, func(cfg *config.Config) (*analytics.Store, error) {
		return analytics.Open(cfg.Store.DuckDB.Path)
	})
	mustProvide(container, func(cfg *config.Config) (*concurrency.Pool, error) {
		return concurrency.New(16)
	})
	mustProvide(container, func(cfg *config.Config) *jobs.StatusStore {
		return jobs.NewStatusStore(kv.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB))
	})
	mustProvide(container, func(cfg *config.Config, status *jobs.StatusStore) *jobs.Enqueuer {
		return jobs.NewEnqueuer(cfg.Store.Redis.Addr, status)
	})
}

func provideModels(container *dig.Container) {
	mustProvide(container, func(cfg *config.Config) chat.Chat {
		return chat.NewOpenAIChat(cfg.LLM.OpenAIAPIKey, cfg.LLM.OpenAIBaseURL, cfg.LLM.ChatPrimaryModel, cfg.LLM.ChatPrimaryModel)
	}, dig.Name("chatPrimary"))
	mustProvide(container, func(cfg *config.Config) (chat.Chat, error) {
		return chat.NewOllamaChat(cfg.LLM.OllamaBaseURL, cfg.LLM.ChatFallbackModel, cfg.LLM.ChatFallbackModel)
	}, dig.Name("chatFallback"))
	mustProvide(container, func(cfg *config.Config) *embedding.Chain {
		primary := embedding.NewOpenAIEmbedder(cfg.LLM.OpenAIAPIKey, cfg.LLM.OpenAIBaseURL,
			cfg.Embed.PrimaryModel, cfg.Embed.PrimaryModel, cfg.Embed.PrimaryDimensions)
		fallback, err := embedding.NewOllamaEmbedder(cfg.LLM.OllamaBaseURL, cfg.Embed.FallbackModel,
			cfg.Embed.FallbackModel, cfg.Embed.FallbackDimensions)
		if err != nil {
			logger.Errorf(context.Background(), "construct fallback embedder: %v", err)
			return &embedding.Chain{Primary: primary}
		}
		return &embedding.Chain{Primary: primary, Fallback: fallback}
	})
}

func providePipelines(container *dig.Container) {
	mustProvide(container, func(cfg *config.Config) *ingestion.Fetcher {
		client := httpclient.New(cfg.Upstream.FetchTimeout, cfg.Upstream.MaxRetries, cfg.Upstream.RetryBaseDelay)
		return ingestion.NewFetcher(cfg.Upstream.BaseURL, client)
	})
	mustProvide(container, func(cfg *config.Config, fetcher *ingestion.Fetcher, cache *kv.Store, objects object.Store, mirror *relational.Store) *ingestion.Service {
		return ingestion.NewService(fetcher, cache, objects, mirror, cfg.Cache.RawHansardTTL, cfg.Cache.ProcessedTTL)
	})

	mustProvide(container, func(cfg *config.Config) videomatch.Catalog {
		client := httpclient.New(cfg.Video.FetchTimeout, cfg.Video.MaxRetries, cfg.Video.RetryBaseDelay)
		return videomatch.NewYouTubeCatalog(cfg.Video.BaseURL, cfg.Video.APIKey, client)
	})
	mustProvide(container, func(cfg *config.Config, catalog videomatch.Catalog, cache *kv.Store, objects object.Store, mirror *relational.Store) *videomatch.Service {
		return videomatch.NewService(catalog, cache, objects, mirror, cfg.Video.DefaultChannel,
			cfg.Video.WindowBeforeDays, cfg.Video.WindowAfterDays, cfg.Video.MinConfidence, cfg.Cache.VideoMatchTTL)
	})

	mustProvide(container, func(
		cfg *config.Config,
		models chatModels,
		embedder *embedding.Chain,
		index *vector.MomentIndex,
		kwIndex *keyword.Index,
		cache *kv.Store,
		objects object.Store,
		ingest *ingestion.Service,
		analyticsStore *analytics.Store,
	) *moments.Service {
		return moments.NewService(models.Primary, embedder, index, kwIndex, cache, objects, ingest,
			analyticsStore, cfg.Cache.MomentsTTL, cfg.Embed.EmbedMoments)
	})

	mustProvide(container, func(
		cfg *config.Config,
		ingest *ingestion.Service,
		embedder *embedding.Chain,
		pool *concurrency.Pool,
		mirror *relational.Store,
		cache *kv.Store,
		models chatModels,
	) *rag.Service {
		return rag.NewService(ingest, embedder, pool, mirror, cache, models.Primary, models.Fallback,
			rag.ChunkParams{MaxTokens: cfg.RAG.Chunk.MaxTokens, Overlap: cfg.RAG.Chunk.OverlapTokens, MinTokens: cfg.RAG.Chunk.MinChunkTokens},
			cfg.RAG.DefaultMaxResults, cfg.RAG.MaxResultsCap, cfg.RAG.ChatTemperature, cfg.RAG.ChatMaxTokens, cfg.RAG.MinSimilarity)
	})

	mustProvide(container, func(svc *moments.Service, status *jobs.StatusStore) *jobs.MomentsBatchHandler {
		return jobs.NewMomentsBatchHandler(svc, status)
	})
	mustProvide(container, func(svc *rag.Service, status *jobs.StatusStore) *jobs.BulkEmbedHandler {
		return jobs.NewBulkEmbedHandler(svc, status)
	})
}

func provideHandlers(container *dig.Container) {
	mustProvide(container, handler.NewIngestHandler)
	mustProvide(container, handler.NewMomentsHandler)
	mustProvide(container, handler.NewVideoHandler)
	mustProvide(container, handler.NewChatHandler)
	mustProvide(container, handler.NewHealthHandler)
	mustProvide(container, func(
		ingest *handler.IngestHandler,
		momentsHandler *handler.MomentsHandler,
		video *handler.VideoHandler,
		chatHandler *handler.ChatHandler,
		health *handler.HealthHandler,
	) handler.Handlers {
		return handler.Handlers{Ingest: ingest, Moments: momentsHandler, Video: video, Chat: chatHandler, Health: health}
	})
}

func runServer(cfg *config.Config, handlers handler.Handlers) error {
	router := handler.NewRouter(handlers)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(context.Background(), "server exited: %v", err)
		}
	}()
	logger.Infof(context.Background(), "server listening on %s", cfg.Server.Addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
