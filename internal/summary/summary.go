package summary

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"solobot/internal/domain"
)

// Summarizer ranks sentences by word frequency (stopwords filtered) and is
// used to show a short recap of the advice given when a stored session is
// resumed.
type Summarizer struct {
	tokenPattern *regexp.Regexp
	sentenceRe   *regexp.Regexp
	stopwords    map[string]struct{}
}

// New creates a frequency-based sentence ranker.
func New() *Summarizer {
	return &Summarizer{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		sentenceRe:   regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
		stopwords:    defaultStopwords(),
	}
}

// Recap summarizes the bot responses of a conversation.
func (s *Summarizer) Recap(turns []domain.Turn, maxSentences int) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(t.Resposta)
		if !strings.HasSuffix(strings.TrimSpace(t.Resposta), ".") {
			b.WriteString(".")
		}
		b.WriteString(" ")
	}
	return s.Summarize(b.String(), maxSentences)
}

// Summarize returns a short summary by ranking sentences using token
// frequency, keeping the selected sentences in original order.
func (s *Summarizer) Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	sentences := s.sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text)
	}
	// Compute word frequencies
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range s.tokens(sent) {
			if _, ok := s.stopwords[tok]; ok {
				continue
			}
			freq[tok]++
		}
	}
	// Normalize frequencies
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}
	// Score sentences
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		sscore := 0.0
		toks := s.tokens(sent)
		for _, tok := range toks {
			if v, ok := freq[tok]; ok {
				sscore += v
			}
		}
		// Normalize by sentence length to avoid bias
		if l := float64(len(toks)); l > 0 {
			sscore /= math.Sqrt(l)
		}
		scores[i] = pair{i, sscore}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	// Keep original order among selected
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	var out []string
	for _, idx := range selected {
		out = append(out, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(out, " ")
}

func (s *Summarizer) tokens(text string) []string {
	lower := strings.ToLower(text)
	return s.tokenPattern.FindAllString(lower, -1)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "o", "e", "é", "de", "do", "da", "dos", "das", "em", "no", "na", "nos", "nas", "um", "uma", "que", "com", "para", "por", "se", "os", "as", "ao", "aos", "mais", "mas", "ou", "já", "não", "tem", "ser", "seu", "sua", "como", "quando", "muito", "pouco", "também", "pela", "pelo", "até", "sem", "sobre", "entre", "isso", "esse", "essa", "este", "esta",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
