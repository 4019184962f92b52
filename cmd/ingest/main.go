package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"legal-rag/internal/config"
	"legal-rag/internal/embedding"
	"legal-rag/internal/helper"
	"legal-rag/internal/ingest"
	"legal-rag/internal/loader"
	"legal-rag/internal/splitter"
	"legal-rag/internal/store"
)

const defaultConfigPath = "./configs/config.yaml"

// resetSupported reports whether the store can drop and recreate its
// table. Only the pgvector backend manages schema.
func resetSupported(st store.VectorStore) bool {
	_, ok := st.(*store.PG)
	return ok
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	dryRun := flag.Bool("dry-run", false, "Load and split only, do not embed or store")
	reset := flag.Bool("reset", false, "Drop and recreate the documents table before ingesting")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if err := cfg.ValidateIngest(); err != nil {
		log.Fatal().Err(err).Msg("Error validating ingest config")
	}

	registry := loader.NewRegistry()
	split, err := splitter.New(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating splitter")
	}

	ctx := context.Background()

	if *dryRun {
		docs, err := registry.LoadDir(cfg.Ingest.DocumentsPath, cfg.Ingest.Include)
		if err != nil {
			log.Fatal().Err(err).Msg("Error loading documents")
		}
		chunks := ingest.BuildChunks(split, docs)
		log.Info().Int("documents", len(docs)).Int("chunks", len(chunks)).Msg("dry run")
		for i, c := range chunks {
			if i >= 3 {
				break
			}
			helper.PrettyPrint(c)
		}
		return
	}

	embedder, err := embedding.New(ctx, &cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	st, err := store.New(&cfg.Database, embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to vector store")
	}
	if *reset && !resetSupported(st) {
		log.Warn().Str("driver", cfg.Database.Driver).Msg("--reset only applies to the pgvector driver; ignoring")
	}
	if pg, ok := st.(*store.PG); ok {
		defer pg.Close()
		if *reset {
			if err := pg.Reset(ctx); err != nil {
				log.Fatal().Err(err).Msg("Error resetting documents table")
			}
		}
		if err := pg.InitSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Error initializing database")
		}
	}

	pipeline := ingest.New(registry, split, st, &cfg.Ingest)
	var bar *progressbar.ProgressBar
	pipeline.SetBatchHook(func(batch, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "ingesting")
		}
		_ = bar.Add(1)
	})

	stats, err := pipeline.Run(ctx, cfg.Ingest.DocumentsPath, cfg.Ingest.Include)
	if err != nil {
		log.Fatal().Err(err).Msg("Error running ingestion")
	}

	log.Info().
		Int("documents", stats.Documents).
		Int("chunks", stats.Chunks).
		Int("batches", stats.Batches).
		Int("failed_batches", stats.FailedBatches).
		Msg("ingestion complete")
	if stats.FailedBatches > 0 {
		log.Warn().Msg("some batches failed; inspect logs and re-run ingestion")
	}
}
