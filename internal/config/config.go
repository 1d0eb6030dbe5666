package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Embedding EmbeddingConfig
	LLM       LLMConfig
	RAG       RAGConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EmbeddingConfig struct {
	Provider  string // "fake", "gemini", "openai"
	Model     string
	Dimension int // fake provider only
	GeminiKey string
	OpenAIKey string
}

type LLMConfig struct {
	Provider     string // "mock", "gemini", "openai", "anthropic"
	Model        string
	GeminiKey    string
	OpenAIKey    string
	AnthropicKey string
}

type RAGConfig struct {
	ChunkSize     int
	ChunkOverlap  int
	TopK          int
	MinScore      float64
	MinTextLength int
	SnippetMaxLen int
	DocsDir       string
	Collection    string
	CacheTTL      time.Duration
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	embedDim, err := getEnvInt("EMBED_DIM", 384)
	if err != nil {
		return nil, fmt.Errorf("invalid EMBED_DIM: %w", err)
	}

	chunkSize, err := getEnvInt("RAG_CHUNK_SIZE", 2000)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_CHUNK_SIZE: %w", err)
	}

	chunkOverlap, err := getEnvInt("RAG_CHUNK_OVERLAP", 200)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_CHUNK_OVERLAP: %w", err)
	}

	topK, err := getEnvInt("RAG_TOP_K", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_TOP_K: %w", err)
	}

	minScore, err := getEnvFloat("RAG_MIN_SCORE", 0.01)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_MIN_SCORE: %w", err)
	}

	minTextLen, err := getEnvInt("RAG_MIN_TEXT_LENGTH", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_MIN_TEXT_LENGTH: %w", err)
	}

	snippetMaxLen, err := getEnvInt("RAG_SNIPPET_MAX_LENGTH", 200)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_SNIPPET_MAX_LENGTH: %w", err)
	}

	cacheTTL, err := getEnvInt("RAG_CACHE_TTL_SECONDS", 300)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_CACHE_TTL_SECONDS: %w", err)
	}

	geminiKey := getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", ""))

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: maxConns,
			MinConns: minConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Embedding: EmbeddingConfig{
			Provider:  getEnv("EMBED_PROVIDER", "gemini"),
			Model:     getEnv("EMBED_MODEL", "gemini-embedding-001"),
			Dimension: embedDim,
			GeminiKey: geminiKey,
			OpenAIKey: getEnv("OPENAI_API_KEY", ""),
		},
		LLM: LLMConfig{
			Provider:     getEnv("LLM_PROVIDER", "gemini"),
			Model:        getEnv("LLM_MODEL", "gemini-2.5-flash"),
			GeminiKey:    geminiKey,
			OpenAIKey:    getEnv("OPENAI_API_KEY", ""),
			AnthropicKey: getEnv("ANTHROPIC_API_KEY", ""),
		},
		RAG: RAGConfig{
			ChunkSize:     chunkSize,
			ChunkOverlap:  chunkOverlap,
			TopK:          topK,
			MinScore:      minScore,
			MinTextLength: minTextLen,
			SnippetMaxLen: snippetMaxLen,
			DocsDir:       getEnv("DOCS_DIR", "data/docs"),
			Collection:    getEnv("RAG_COLLECTION", "document_chunks"),
			CacheTTL:      time.Duration(cacheTTL) * time.Second,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Embedding.Provider == "gemini" && c.Embedding.GeminiKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.Embedding.Provider == "openai" && c.Embedding.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.LLM.Provider == "gemini" && c.LLM.GeminiKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.LLM.Provider == "openai" && c.LLM.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.LLM.Provider == "anthropic" && c.LLM.AnthropicKey == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}

	if c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		return fmt.Errorf("RAG_CHUNK_OVERLAP (%d) must be smaller than RAG_CHUNK_SIZE (%d)",
			c.RAG.ChunkOverlap, c.RAG.ChunkSize)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}
