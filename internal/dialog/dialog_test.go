package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solobot/internal/domain"
)

func TestExtractSlots(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Slots
	}{
		{
			name:  "soil_and_problem",
			input: "meu solo argiloso está seco",
			want:  domain.Slots{SoilType: "argiloso", Problem: "seco"},
		},
		{
			name:  "action",
			input: "quero adubar a horta",
			want:  domain.Slots{DesiredAction: "adubar"},
		},
		{
			// "ácido" is in both the soil type and problem lists; list
			// order fills both slots.
			name:  "acid_overlap",
			input: "solo ácido",
			want:  domain.Slots{SoilType: "ácido", Problem: "ácido"},
		},
		{
			// list-definition order wins, not input order
			name:  "list_order_priority",
			input: "solo alcalino e arenoso",
			want:  domain.Slots{SoilType: "arenoso", Problem: "alcalino"},
		},
		{
			name:  "fertility_level",
			input: "tenho baixa fertilidade",
			want:  domain.Slots{FertilityLevel: "baixa"},
		},
		{
			name:  "nothing",
			input: "bom dia",
			want:  domain.Slots{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSlots(tt.input))
		})
	}
}

func TestMerge(t *testing.T) {
	old := domain.Slots{SoilType: "arenoso", Problem: "seco"}
	merged := Merge(old, domain.Slots{Problem: "compactado", DesiredAction: "corrigir"})
	assert.Equal(t, domain.Slots{
		SoilType:      "arenoso",
		Problem:       "compactado",
		DesiredAction: "corrigir",
	}, merged)

	// empty values never overwrite
	assert.Equal(t, old, Merge(old, domain.Slots{}))
}

func TestConceptualAndGenericPatterns(t *testing.T) {
	assert.True(t, Conceptual("o que e calcario"))
	assert.True(t, Conceptual("me explique a adubacao"))
	assert.True(t, Conceptual("para que serve o calcario"))
	assert.False(t, Conceptual("meu solo esta seco"))

	assert.True(t, GenericFollowup("o que e isso"))
	assert.True(t, GenericFollowup("mas o que significa isso"))
	assert.False(t, GenericFollowup("o que e calcario"))
}

func TestExpandWithContext(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ctx   domain.Slots
		want  string
	}{
		{
			name:  "pronoun_with_soil_type",
			input: "e o que eu faço com ele?",
			ctx:   domain.Slots{SoilType: "argiloso"},
			want:  "meu solo argiloso e o que eu faço com ele?",
		},
		{
			name:  "soil_type_beats_problem",
			input: "como melhoro isso?",
			ctx:   domain.Slots{SoilType: "arenoso", Problem: "seco"},
			want:  "meu solo arenoso como melhoro isso?",
		},
		{
			name:  "fertility_level_template",
			input: "o que isso significa?",
			ctx:   domain.Slots{FertilityLevel: "baixa"},
			want:  "meu solo com baixa o que isso significa?",
		},
		{
			name:  "problem_template",
			input: "ela melhora com chuva?",
			ctx:   domain.Slots{Problem: "seco"},
			want:  "meu solo seco ela melhora com chuva?",
		},
		{
			name:  "no_pronoun_passthrough",
			input: "como adubar?",
			ctx:   domain.Slots{SoilType: "argiloso"},
			want:  "como adubar?",
		},
		{
			name:  "empty_context_passthrough",
			input: "o que faço com ele?",
			ctx:   domain.Slots{},
			want:  "o que faço com ele?",
		},
		{
			name:  "action_only_context_passthrough",
			input: "e com isso?",
			ctx:   domain.Slots{DesiredAction: "adubar"},
			want:  "e com isso?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandWithContext(tt.input, tt.ctx))
		})
	}
}
