package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-rag/internal/config"
	"legal-rag/internal/store"
)

type nopEmbedder struct{}

func (nopEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, nil
}

func (nopEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{0}, nil
}

func TestResetSupported(t *testing.T) {
	chrom, err := store.NewChromemInMemory("legal_documents", nopEmbedder{})
	require.NoError(t, err)
	assert.False(t, resetSupported(chrom))

	// connection is lazy, nothing is dialed here
	pg, err := store.NewPG(&config.DatabaseConfig{URL: "postgres://localhost:5432/postgres"}, nopEmbedder{})
	require.NoError(t, err)
	assert.True(t, resetSupported(pg))
}
