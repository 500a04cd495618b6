// Package config loads the application configuration from environment
// variables and an optional YAML file using viper, the same binding
// style the teacher repository uses throughout.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete binding surface enumerated in the system design's
// external-interfaces section: upstream catalog access, cache TTLs,
// provider selection, video catalog credentials, and per-request feature
// flag defaults.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Cache    CacheConfig    `mapstructure:"cache"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Embed    EmbedConfig    `mapstructure:"embedding"`
	Video    VideoConfig    `mapstructure:"video"`
	RAG      RAGConfig      `mapstructure:"rag"`
	Store    StoreConfig    `mapstructure:"store"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type UpstreamConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
}

type CacheConfig struct {
	RawHansardTTL    time.Duration `mapstructure:"raw_hansard_ttl"`
	ProcessedTTL     time.Duration `mapstructure:"processed_ttl"`
	MomentsTTL       time.Duration `mapstructure:"moments_ttl"`
	VideoMatchTTL    time.Duration `mapstructure:"video_match_ttl"`
}

type LLMConfig struct {
	ExtractionProvider string `mapstructure:"extraction_provider"`
	ExtractionModel    string `mapstructure:"extraction_model"`
	ChatPrimaryModel   string `mapstructure:"chat_primary_model"`
	ChatFallbackModel  string `mapstructure:"chat_fallback_model"`
	OpenAIAPIKey       string `mapstructure:"openai_api_key"`
	OpenAIBaseURL      string `mapstructure:"openai_base_url"`
	OllamaBaseURL      string `mapstructure:"ollama_base_url"`
}

type EmbedConfig struct {
	PrimaryProvider   string `mapstructure:"primary_provider"`
	PrimaryModel      string `mapstructure:"primary_model"`
	PrimaryDimensions int    `mapstructure:"primary_dimensions"`
	FallbackProvider  string `mapstructure:"fallback_provider"`
	FallbackModel     string `mapstructure:"fallback_model"`
	FallbackDimensions int   `mapstructure:"fallback_dimensions"`
	EmbedMoments      bool   `mapstructure:"embed_moments"`
}

type VideoConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	APIKey           string        `mapstructure:"api_key"`
	DefaultChannel   string        `mapstructure:"default_channel"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	MaxRetries       int           `mapstructure:"max_retries"`
	RetryBaseDelay   time.Duration `mapstructure:"retry_base_delay"`
	WindowBeforeDays int           `mapstructure:"window_before_days"`
	WindowAfterDays  int           `mapstructure:"window_after_days"`
	MinConfidence    float64       `mapstructure:"min_confidence"`
}

type ChunkConfig struct {
	MaxTokens      int `mapstructure:"max_tokens"`
	OverlapTokens  int `mapstructure:"overlap_tokens"`
	MinChunkTokens int `mapstructure:"min_chunk_tokens"`
}

type RAGConfig struct {
	Chunk            ChunkConfig `mapstructure:"chunk"`
	DefaultMaxResults int        `mapstructure:"default_max_results"`
	MaxResultsCap     int        `mapstructure:"max_results_cap"`
	ChatTemperature   float32    `mapstructure:"chat_temperature"`
	ChatMaxTokens     int        `mapstructure:"chat_max_tokens"`
	EmbedBatchTimeout time.Duration `mapstructure:"embed_batch_timeout"`
	MinSimilarity     float64    `mapstructure:"min_similarity"`
}

type StoreConfig struct {
	ObjectBackend string         `mapstructure:"object_backend"` // "minio" | "cos"
	MinIO         MinIOConfig    `mapstructure:"minio"`
	COS           COSConfig      `mapstructure:"cos"`
	Redis         RedisConfig    `mapstructure:"redis"`
	Qdrant        QdrantConfig   `mapstructure:"qdrant"`
	Postgres      PostgresConfig `mapstructure:"postgres"`
	Elastic       ElasticConfig  `mapstructure:"elastic"`
	DuckDB        DuckDBConfig   `mapstructure:"duckdb"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type COSConfig struct {
	BucketURL string `mapstructure:"bucket_url"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type QdrantConfig struct {
	Addr              string `mapstructure:"addr"`
	MomentsCollection string `mapstructure:"moments_collection"`
}

type PostgresConfig struct {
	DSN              string `mapstructure:"dsn"`
	MigrationsPath   string `mapstructure:"migrations_path"`
	ChunksVectorDims int    `mapstructure:"chunks_vector_dims"`
}

type ElasticConfig struct {
	Addresses    []string `mapstructure:"addresses"`
	MomentsIndex string   `mapstructure:"moments_index"`
}

type DuckDBConfig struct {
	Path          string `mapstructure:"path"`
	ParquetExport string `mapstructure:"parquet_export_dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from an optional config file at path and from
// environment variables (prefixed HANSARDKB_, nested keys joined by
// underscore), falling back to built-in defaults. An environment
// variable is applied only to a key that has a built-in default or is
// present in the config file; keys without a default (API keys, store
// credentials, DSNs) are not read from the environment alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HANSARDKB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("upstream.base_url", "https://sprs.parl.gov.sg/search/api/v1/reports")
	v.SetDefault("upstream.fetch_timeout", 30*time.Second)
	v.SetDefault("upstream.max_retries", 3)
	v.SetDefault("upstream.retry_base_delay", 500*time.Millisecond)

	v.SetDefault("cache.raw_hansard_ttl", 24*time.Hour)
	v.SetDefault("cache.processed_ttl", 24*time.Hour)
	v.SetDefault("cache.moments_ttl", time.Hour)
	v.SetDefault("cache.video_match_ttl", 6*time.Hour)

	v.SetDefault("llm.extraction_provider", "openai")
	v.SetDefault("llm.chat_primary_model", "gpt-4o-mini")
	v.SetDefault("llm.chat_fallback_model", "llama3.1")

	v.SetDefault("embedding.primary_provider", "openai")
	v.SetDefault("embedding.primary_dimensions", 768)
	v.SetDefault("embedding.fallback_provider", "ollama")
	v.SetDefault("embedding.fallback_dimensions", 1536)
	v.SetDefault("embedding.embed_moments", true)

	v.SetDefault("video.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("video.fetch_timeout", 30*time.Second)
	v.SetDefault("video.max_retries", 3)
	v.SetDefault("video.retry_base_delay", 500*time.Millisecond)
	v.SetDefault("video.window_before_days", 2)
	v.SetDefault("video.window_after_days", 3)
	v.SetDefault("video.min_confidence", 5.0)

	v.SetDefault("rag.chunk.max_tokens", 500)
	v.SetDefault("rag.chunk.overlap_tokens", 50)
	v.SetDefault("rag.chunk.min_chunk_tokens", 100)
	v.SetDefault("rag.default_max_results", 5)
	v.SetDefault("rag.max_results_cap", 10)
	v.SetDefault("rag.chat_temperature", 0.3)
	v.SetDefault("rag.chat_max_tokens", 500)
	v.SetDefault("rag.embed_batch_timeout", 60*time.Second)
	v.SetDefault("rag.min_similarity", 0.5)

	v.SetDefault("store.object_backend", "minio")
	v.SetDefault("store.minio.bucket", "hansardkb")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.qdrant.addr", "localhost:6334")
	v.SetDefault("store.qdrant.moments_collection", "moments")
	v.SetDefault("store.postgres.chunks_vector_dims", 1536)
	v.SetDefault("store.elastic.moments_index", "moments")
	v.SetDefault("store.duckdb.path", "./data/analytics.duckdb")
	v.SetDefault("store.duckdb.parquet_export_dir", "./data/analytics-export")

	v.SetDefault("log.level", "info")
}
