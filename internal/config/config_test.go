package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nao_existe.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "semantic", cfg.Backend)
	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, 0.65, cfg.Semantic.Threshold)
	assert.Equal(t, 0.70, cfg.Classifier.Threshold)
	assert.Equal(t, "historico", cfg.HistoryDir)
}

func TestLoadFillsPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: classifier\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "classifier", cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	// the two thresholds default independently
	assert.Equal(t, 0.65, cfg.Semantic.Threshold)
	assert.Equal(t, 0.70, cfg.Classifier.Threshold)
	assert.Equal(t, "modelo_intencao.json", cfg.Classifier.WeightsPath)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultConfig()
	cfg.Backend = "classifier"
	cfg.Semantic.Threshold = 0.8
	cfg.HistoryDir = "minhas_sessoes"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestOpenAIDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "embedder:\n  type: openai\n  openai:\n    model: nomic-embed-text\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Embedder.OpenAI)
	assert.Equal(t, "nomic-embed-text", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.OpenAI.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, 30, cfg.Embedder.OpenAI.TimeoutSecs)
}
