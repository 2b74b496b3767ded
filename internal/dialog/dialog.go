package dialog

import (
	"fmt"
	"regexp"
	"strings"

	"solobot/internal/domain"
)

// Keyword lists scanned against the lowercased raw input. Matching is
// accent-sensitive and the first term in list order wins per category;
// "ácido" and "alcalino" intentionally appear in two lists, with the soil
// type list taking its own first match.
var (
	soilTypes       = []string{"arenoso", "argiloso", "humoso", "calcário", "ácido", "alcalino"}
	fertilityLevels = []string{"alta", "média", "baixa", "alta fertilidade", "média fertilidade", "baixa fertilidade"}
	problems        = []string{"seco", "úmido", "compactado", "fraco", "pobre", "ácido", "alcalino"}
	actions         = []string{"melhorar", "adubar", "nutrir", "fortalecer", "recuperar", "corrigir"}

	pronounRe = regexp.MustCompile(`\b(ele|ela|isso|isso mesmo)\b`)
)

// Conceptual-question and generic-follow-up patterns, matched as
// substrings of the normalized (deaccented) input.
var (
	conceptualPatterns = []string{"o que e", "explique", "para que serve", "o que significa", "me explique"}
	genericFollowups   = []string{"o que e isso", "mas o que e isso", "mas o que significa isso"}
)

// Conceptual reports whether the normalized input asks for an explanation
// whose answer is worth remembering for a later "what is that?" follow-up.
func Conceptual(normalized string) bool {
	return containsAny(normalized, conceptualPatterns)
}

// GenericFollowup reports whether the normalized input is a vague
// "what is that?" style question that should repeat the last remembered
// conceptual answer instead of being answered anew.
func GenericFollowup(normalized string) bool {
	return containsAny(normalized, genericFollowups)
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// ExtractSlots scans the input for the fixed keyword lists and returns the
// first match per category, in list-definition order rather than input
// order. Unmatched categories stay empty.
func ExtractSlots(text string) domain.Slots {
	lower := strings.ToLower(text)
	return domain.Slots{
		SoilType:       firstMatch(lower, soilTypes),
		FertilityLevel: firstMatch(lower, fertilityLevels),
		Problem:        firstMatch(lower, problems),
		DesiredAction:  firstMatch(lower, actions),
	}
}

func firstMatch(lower string, terms []string) string {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return term
		}
	}
	return ""
}

// Merge combines two slot sets: any non-empty value in next overwrites the
// same slot in prev, empty values never overwrite.
func Merge(prev, next domain.Slots) domain.Slots {
	out := prev
	if next.SoilType != "" {
		out.SoilType = next.SoilType
	}
	if next.FertilityLevel != "" {
		out.FertilityLevel = next.FertilityLevel
	}
	if next.Problem != "" {
		out.Problem = next.Problem
	}
	if next.DesiredAction != "" {
		out.DesiredAction = next.DesiredAction
	}
	return out
}

// ExpandWithContext rewrites a pronoun-bearing follow-up question by
// prepending a phrase built from the first present slot among soil type,
// fertility level and problem, in that priority. Inputs without an
// anaphoric pronoun, or an empty context, pass through unchanged. This is
// template substitution, not coreference resolution.
func ExpandWithContext(input string, ctx domain.Slots) string {
	if ctx.Empty() {
		return input
	}
	if !pronounRe.MatchString(strings.ToLower(input)) {
		return input
	}
	switch {
	case ctx.SoilType != "":
		return fmt.Sprintf("meu solo %s %s", ctx.SoilType, input)
	case ctx.FertilityLevel != "":
		return fmt.Sprintf("meu solo com %s %s", ctx.FertilityLevel, input)
	case ctx.Problem != "":
		return fmt.Sprintf("meu solo %s %s", ctx.Problem, input)
	}
	return input
}
