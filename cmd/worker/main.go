// Command worker runs the asynq background server that drains the
// moments-batch and bulk-embed queues enqueued by the HTTP API.
package main

import (
	"context"
	"os"

	"go.uber.org/dig"

	"github.com/sghansard/hansardkb/internal/analytics"
	"github.com/sghansard/hansardkb/internal/concurrency"
	"github.com/sghansard/hansardkb/internal/config"
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
)

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

	container := dig.New()
	mustProvide(container, func() *config.Config { return cfg })
	provideStores(container)
	provideModels(container)
	providePipelines(container)

	if err := container.Invoke(runWorker); err != nil {
		logger.Errorf(ctx, "worker invoke: %v", err)
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

func runWorker(cfg *config.Config, momentsHandler *jobs.MomentsBatchHandler, bulkEmbedHandler *jobs.BulkEmbedHandler) error {
	server, mux := jobs.NewServer(cfg.Store.Redis.Addr, 10, momentsHandler, bulkEmbedHandler)
	logger.Infof(context.Background(), "worker listening on redis %s", cfg.Store.Redis.Addr)
	return server.Run(mux)
}
