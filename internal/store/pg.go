package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"legal-rag/internal/config"
	"legal-rag/internal/embedding"
	"legal-rag/internal/errs"
	"legal-rag/internal/models"
)

// Document is one row of the legal_documents table.
type Document struct {
	bun.BaseModel `bun:"table:legal_documents,alias:d"`
	ID            int64          `bun:"id,pk,autoincrement"`
	Content       string         `bun:"content,notnull"`
	Metadata      map[string]any `bun:"metadata,type:jsonb"`
	Embedding     []float32      `bun:"embedding,notnull,type:vector(768)"`
	Distance      float64        `bun:"distance,scanonly"`
}

// PG stores chunks in a Postgres table with a pgvector embedding column.
type PG struct {
	db       *bun.DB
	embedder embedding.Embedder
}

// connect opens the database either through the pgdriver connector
// (Supabase URL plus service key) or through lib/pq for a plain DSN.
func connect(cfg *config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Key != "" {
		dsn := cfg.URL + "?sslmode=disable"
		return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(cfg.Key))), nil
	}
	return sql.Open("postgres", cfg.URL)
}

func NewPG(cfg *config.DatabaseConfig, embedder embedding.Embedder) (*PG, error) {
	sqldb, err := connect(cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "connecting to database")
	}
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &PG{db: db, embedder: embedder}, nil
}

// InitSchema creates the documents table if it does not exist.
func (s *PG) InitSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*Document)(nil)).IfNotExists().Exec(ctx); err != nil {
		return errs.Wrap(errs.ErrStoreWrite, err, "creating table")
	}
	return nil
}

// Reset drops the documents table. Operational escape hatch for full
// re-ingestion.
func (s *PG) Reset(ctx context.Context) error {
	if _, err := s.db.NewDropTable().Model((*Document)(nil)).IfExists().Exec(ctx); err != nil {
		return errs.Wrap(errs.ErrStoreWrite, err, "dropping table")
	}
	return nil
}

func (s *PG) Close() error {
	return s.db.Close()
}

func (s *PG) AddDocuments(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vecs, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return err
	}
	if len(vecs) != len(chunks) {
		return errs.New(errs.ErrStoreWrite, "embedding count does not match chunk count")
	}

	docs := make([]Document, len(chunks))
	for i, c := range chunks {
		docs[i] = Document{
			Content:   c.Content,
			Metadata:  c.Metadata,
			Embedding: vecs[i],
		}
	}
	if _, err := s.db.NewInsert().Model(&docs).Exec(ctx); err != nil {
		return errs.Wrap(errs.ErrStoreWrite, err, "inserting documents")
	}
	return nil
}

func (s *PG) SimilaritySearch(ctx context.Context, query string, k int) ([]models.SimilarityResult, error) {
	if k <= 0 {
		return nil, errs.New(errs.ErrValidation, "k must be a positive integer")
	}
	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	lit := vectorLiteral(vec)

	var docs []Document
	err = s.db.NewSelect().
		Model(&docs).
		Column("content", "metadata").
		ColumnExpr("embedding <=> ? AS distance", lit).
		OrderExpr("embedding <=> ?", lit).
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrStoreRead, err, "similarity search")
	}

	results := make([]models.SimilarityResult, len(docs))
	for i, d := range docs {
		results[i] = models.SimilarityResult{
			Chunk: models.Chunk{Content: d.Content, Metadata: d.Metadata},
			Score: 1 - d.Distance,
		}
	}
	return results, nil
}

// vectorLiteral renders a pgvector input literal, e.g. [0.1,0.2,0.3].
func vectorLiteral(vec []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
