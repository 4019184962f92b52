package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"legal-rag/internal/config"
	"legal-rag/internal/embedding"
	"legal-rag/internal/llm"
	"legal-rag/internal/rag"
	"legal-rag/internal/server"
	"legal-rag/internal/store"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	ctx := context.Background()

	embedder, err := embedding.New(ctx, &cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	st, err := store.New(&cfg.Database, embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to vector store")
	}

	chat, err := llm.New(ctx, &cfg.ChatLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chat model")
	}

	svc := rag.New(st, chat, &cfg.RAG)
	router := server.NewRouter(svc, &cfg.Server)

	log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
