package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResponses(t *testing.T) {
	path := writeCSV(t, "input_text;resposta\n"+
		"meu solo está seco;Regue com mais frequência\n"+
		"como corrigir solo ácido?;Aplique calcário\n")

	entries, err := LoadResponses(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "meu solo está seco", entries[0].Question)
	assert.Equal(t, "Aplique calcário", entries[1].Response)
}

func TestLoadResponsesColumnOrder(t *testing.T) {
	path := writeCSV(t, "resposta;extra;input_text\n"+
		"Regue mais;x;solo seco\n")

	entries, err := LoadResponses(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "solo seco", entries[0].Question)
	assert.Equal(t, "Regue mais", entries[0].Response)
}

func TestLoadResponsesMissingColumn(t *testing.T) {
	path := writeCSV(t, "pergunta;resposta\nsolo seco;Regue mais\n")
	_, err := LoadResponses(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input_text")
}

func TestLoadIntents(t *testing.T) {
	path := writeCSV(t, "input_text;intent;resposta\n"+
		"meu solo está seco;irrigacao;Regue com mais frequência\n"+
		"solo muito úmido;drenagem;Melhore a drenagem\n")

	entries, err := LoadIntents(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "irrigacao", entries[0].Intent)
	assert.Equal(t, "Melhore a drenagem", entries[1].Response)
}

func TestLoadIntentsMissingFile(t *testing.T) {
	_, err := LoadIntents(filepath.Join(t.TempDir(), "nao_existe.csv"))
	assert.Error(t, err)
}
