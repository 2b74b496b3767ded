package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"solobot/internal/domain"
)

func TestSummarizeCapsSentences(t *testing.T) {
	s := New()
	text := "A rega frequente mantém o solo úmido. O calcário corrige a acidez do solo. " +
		"Adubo orgânico melhora a fertilidade do solo. O sol forte resseca a terra."
	out := s.Summarize(text, 2)
	assert.NotEmpty(t, out)
	assert.LessOrEqual(t, strings.Count(out, "."), 2)
}

func TestSummarizeShortTextPassthrough(t *testing.T) {
	s := New()
	assert.Equal(t, "sem pontuação final", s.Summarize("sem pontuação final", 3))
	assert.Equal(t, "", s.Summarize("", 3))
}

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	s := New()
	text := "Primeira frase sobre solo. Segunda frase sobre solo."
	out := s.Summarize(text, 2)
	first := strings.Index(out, "Primeira")
	second := strings.Index(out, "Segunda")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
}

func TestRecap(t *testing.T) {
	s := New()
	turns := []domain.Turn{
		{Entrada: "solo seco", Resposta: "Regue com mais frequência"},
		{Entrada: "solo ácido", Resposta: "Aplique calcário no solo."},
	}
	out := s.Recap(turns, 3)
	assert.Contains(t, out, "Regue com mais frequência.")
	assert.Contains(t, out, "Aplique calcário no solo.")
}

func TestRecapEmpty(t *testing.T) {
	assert.Equal(t, "", New().Recap(nil, 3))
}
