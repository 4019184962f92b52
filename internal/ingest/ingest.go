// Package ingest populates the vector store from a directory of source
// documents: load, split, then embed and persist in rate-limited
// batches. The pipeline is strictly sequential; a failed batch is logged
// and skipped, never retried, and never aborts the run.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog/log"

	"legal-rag/internal/config"
	"legal-rag/internal/loader"
	"legal-rag/internal/models"
	"legal-rag/internal/splitter"
	"legal-rag/internal/store"
)

// Stats summarizes one ingestion run.
type Stats struct {
	Documents     int
	Chunks        int
	Batches       int
	FailedBatches int
}

// Pipeline is the one-shot ingestion process. Re-running it duplicates
// rows: the store does not de-duplicate, but every chunk carries a
// content hash in its metadata so operators can audit duplicates.
type Pipeline struct {
	registry  *loader.Registry
	splitter  *splitter.Splitter
	store     store.VectorStore
	batchSize int
	delay     time.Duration

	onBatch func(batch, total int)
	wait    func(ctx context.Context, d time.Duration) error
}

func New(registry *loader.Registry, split *splitter.Splitter, st store.VectorStore, cfg *config.IngestConfig) *Pipeline {
	return &Pipeline{
		registry:  registry,
		splitter:  split,
		store:     st,
		batchSize: cfg.BatchSize,
		delay:     time.Duration(cfg.BatchDelaySecs) * time.Second,
		wait:      waitCtx,
	}
}

// SetBatchHook registers a callback invoked after each batch attempt,
// successful or not. Used for CLI progress reporting.
func (p *Pipeline) SetBatchHook(fn func(batch, total int)) {
	p.onBatch = fn
}

// Run loads every supported file under root, splits it, and submits the
// chunks to the store in batches with a fixed inter-batch delay. The
// delay is skipped after the last batch. Context cancellation stops the
// run between batches; a partially populated store is acceptable.
func (p *Pipeline) Run(ctx context.Context, root, include string) (*Stats, error) {
	docs, err := p.registry.LoadDir(root, include)
	if err != nil {
		return nil, err
	}
	log.Info().Int("documents", len(docs)).Msg("loaded documents")

	chunks := BuildChunks(p.splitter, docs)
	log.Info().Int("chunks", len(chunks)).Msg("split into chunks")

	stats := &Stats{Documents: len(docs), Chunks: len(chunks)}
	if len(chunks) == 0 {
		return stats, nil
	}
	total := (len(chunks) + p.batchSize - 1) / p.batchSize
	stats.Batches = total

	for i := 0; i < len(chunks); i += p.batchSize {
		end := min(i+p.batchSize, len(chunks))
		num := i/p.batchSize + 1

		log.Info().Int("batch", num).Int("total", total).Int("size", end-i).Msg("processing batch")
		if err := p.store.AddDocuments(ctx, chunks[i:end]); err != nil {
			// Best effort: the operator inspects logs and re-runs.
			log.Error().Err(err).Int("batch", num).Msg("failed to add batch")
			stats.FailedBatches++
		} else {
			log.Info().Int("batch", num).Msg("added batch")
		}
		if p.onBatch != nil {
			p.onBatch(num, total)
		}

		if end < len(chunks) {
			log.Info().Dur("delay", p.delay).Msg("waiting before next batch")
			if err := p.wait(ctx, p.delay); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

// BuildChunks splits loaded documents into store-ready chunks, attaching
// source, page, per-document chunk ordinal, and a content hash.
func BuildChunks(split *splitter.Splitter, docs []models.RawDocument) []models.Chunk {
	var chunks []models.Chunk
	for _, doc := range docs {
		for i, text := range split.Split(doc.Content) {
			sum := sha256.Sum256([]byte(text))
			md := map[string]any{
				models.MetaSource:      doc.Source,
				models.MetaChunkID:     i + 1,
				models.MetaContentHash: hex.EncodeToString(sum[:]),
			}
			if doc.Page > 0 {
				md[models.MetaPage] = doc.Page
			}
			chunks = append(chunks, models.Chunk{Content: text, Metadata: md})
		}
	}
	return chunks
}

func waitCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
