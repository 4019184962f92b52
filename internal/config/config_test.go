package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-rag/internal/errs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
database:
  driver: pgvector
  url: postgres://db.example.supabase.co:5432/postgres
embed_llm:
  api_key: ${TEST_GOOGLE_KEY}
chat_llm:
  api_key: ${TEST_GOOGLE_KEY}
`

func TestLoadExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("TEST_GOOGLE_KEY", "secret-key")
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.EmbedLLM.APIKey)
	assert.Equal(t, "google", cfg.EmbedLLM.Provider)
	assert.Equal(t, "text-embedding-004", cfg.EmbedLLM.Model)
	assert.Equal(t, "gemini-2.5-flash", cfg.ChatLLM.Model)
	assert.Equal(t, 1000, cfg.Ingest.ChunkSize)
	assert.Equal(t, 200, cfg.Ingest.ChunkOverlap)
	assert.Equal(t, 100, cfg.Ingest.BatchSize)
	assert.Equal(t, 60, cfg.Ingest.BatchDelaySecs)
	assert.Equal(t, 10, cfg.RAG.TopK)
	assert.Equal(t, 60, cfg.RAG.AnswerTimeoutSecs)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "legal_documents", cfg.Database.Collection)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("TEST_GOOGLE_KEY", "")
	path := writeConfig(t, minimalConfig)

	_, err := Load(path)
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestLoadChromemRequiresPath(t *testing.T) {
	t.Setenv("TEST_GOOGLE_KEY", "secret-key")
	path := writeConfig(t, `
database:
  driver: chromem
embed_llm:
  api_key: ${TEST_GOOGLE_KEY}
chat_llm:
  api_key: ${TEST_GOOGLE_KEY}
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestLoadUnknownDriver(t *testing.T) {
	t.Setenv("TEST_GOOGLE_KEY", "secret-key")
	path := writeConfig(t, `
database:
  driver: sqlite
embed_llm:
  api_key: ${TEST_GOOGLE_KEY}
chat_llm:
  api_key: ${TEST_GOOGLE_KEY}
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestValidateIngest(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.ValidateIngest(), errs.ErrConfig)

	cfg.Ingest.DocumentsPath = "/var/legal-files"
	assert.NoError(t, cfg.ValidateIngest())
}
