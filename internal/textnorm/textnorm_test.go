package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "MEU SOLO", "meu solo"},
		{"diacritics", "solo árido está úmido", "solo arido esta umido"},
		{"punctuation", "o que é pH? (explique!)", "o que e ph explique"},
		{"whitespace", "  muito \t espaço \n aqui  ", "muito espaco aqui"},
		{"empty", "", ""},
		{"only_punctuation", "?!...", ""},
		{"cedilla", "adubação com calcário", "adubacao com calcario"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Meu solo está FRACO, e seco!",
		"adubação nitrogenada?",
		"",
		"já normalizado",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
