package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"legal-rag/internal/errs"
)

// LLMConfig configures one hosted model endpoint, either Google Gemini
// or an OpenAI-compatible server.
type LLMConfig struct {
	Provider string `yaml:"provider"` // "google" or "openai"
	BaseURL  string `yaml:"base_url"` // openai only
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// DatabaseConfig selects and configures the vector store backend.
type DatabaseConfig struct {
	Driver     string `yaml:"driver"` // "pgvector" or "chromem"
	URL        string `yaml:"url"`
	Key        string `yaml:"key"` // service role key, used as the connection password
	Debug      bool   `yaml:"debug"`
	Path       string `yaml:"path"` // chromem only
	Collection string `yaml:"collection"`
}

// IngestConfig configures the offline ingestion pipeline.
type IngestConfig struct {
	DocumentsPath  string `yaml:"documents_path"`
	Include        string `yaml:"include"` // optional glob, e.g. "**/*.pdf"
	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
	BatchSize      int    `yaml:"batch_size"`
	BatchDelaySecs int    `yaml:"batch_delay_secs"`
}

// RAGConfig configures the query service.
type RAGConfig struct {
	TopK              int `yaml:"top_k"`
	AnswerTimeoutSecs int `yaml:"answer_timeout_secs"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
	JWTSecret   string   `yaml:"jwt_secret"` // auth disabled when empty
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	EmbedLLM LLMConfig      `yaml:"embed_llm"`
	ChatLLM  LLMConfig      `yaml:"chat_llm"`
	Ingest   IngestConfig   `yaml:"ingest"`
	RAG      RAGConfig      `yaml:"rag"`
	Server   ServerConfig   `yaml:"server"`
}

// Load reads the YAML config at path, expanding ${VAR} references from
// the environment. A .env file in the working directory is honored when
// present. Missing required values fail fast with errs.ErrConfig.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, errs.Wrap(errs.ErrConfig, err, "loading .env file")
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "reading config file")
	}

	expanded := os.Expand(string(data), os.Getenv)

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "parsing config file")
	}

	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.EmbedLLM.Provider == "" {
		cfg.EmbedLLM.Provider = "google"
	}
	if cfg.EmbedLLM.Model == "" {
		cfg.EmbedLLM.Model = "text-embedding-004"
	}
	if cfg.ChatLLM.Provider == "" {
		cfg.ChatLLM.Provider = "google"
	}
	if cfg.ChatLLM.Model == "" {
		cfg.ChatLLM.Model = "gemini-2.5-flash"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "pgvector"
	}
	if cfg.Database.Collection == "" {
		cfg.Database.Collection = "legal_documents"
	}
	if cfg.Ingest.ChunkSize == 0 {
		cfg.Ingest.ChunkSize = 1000
	}
	if cfg.Ingest.ChunkOverlap == 0 {
		cfg.Ingest.ChunkOverlap = 200
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = 100
	}
	if cfg.Ingest.BatchDelaySecs == 0 {
		cfg.Ingest.BatchDelaySecs = 60
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 10
	}
	if cfg.RAG.AnswerTimeoutSecs == 0 {
		cfg.RAG.AnswerTimeoutSecs = 60
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}

func (cfg *Config) validate() error {
	if cfg.EmbedLLM.APIKey == "" {
		return errs.New(errs.ErrConfig, "embed_llm.api_key is required")
	}
	if cfg.ChatLLM.APIKey == "" {
		return errs.New(errs.ErrConfig, "chat_llm.api_key is required")
	}
	if cfg.EmbedLLM.Provider == "openai" && cfg.EmbedLLM.BaseURL == "" {
		return errs.New(errs.ErrConfig, "embed_llm.base_url is required for the openai provider")
	}
	switch cfg.Database.Driver {
	case "pgvector":
		if cfg.Database.URL == "" {
			return errs.New(errs.ErrConfig, "database.url is required for the pgvector driver")
		}
	case "chromem":
		if cfg.Database.Path == "" {
			return errs.New(errs.ErrConfig, "database.path is required for the chromem driver")
		}
	default:
		return errs.New(errs.ErrConfig, "database.driver must be pgvector or chromem")
	}
	return nil
}

// ValidateIngest checks the extra requirements of the ingestion CLI.
func (cfg *Config) ValidateIngest() error {
	if strings.TrimSpace(cfg.Ingest.DocumentsPath) == "" {
		return errs.New(errs.ErrConfig, "ingest.documents_path is required")
	}
	return nil
}
