package chat

import (
	"go.uber.org/zap"

	"solobot/internal/classifier"
	"solobot/internal/dataset"
	"solobot/internal/textnorm"
)

// IntentResponder answers by classifying the input into an intent and
// picking the response whose training question is most similar to the
// input by matching-subsequence ratio.
type IntentResponder struct {
	model     *classifier.Model
	byIntent  map[string][]dataset.IntentEntry
	threshold float64
	logger    *zap.Logger
}

// NewIntentResponder groups the labelled dataset by intent (questions
// normalized) and wires it to a loaded classifier model.
func NewIntentResponder(model *classifier.Model, entries []dataset.IntentEntry, threshold float64, logger *zap.Logger) *IntentResponder {
	byIntent := make(map[string][]dataset.IntentEntry)
	for _, e := range entries {
		e.Question = textnorm.Normalize(e.Question)
		byIntent[e.Intent] = append(byIntent[e.Intent], e)
	}
	return &IntentResponder{
		model:     model,
		byIntent:  byIntent,
		threshold: threshold,
		logger:    logger,
	}
}

// Respond classifies the normalized input and applies the confidence
// threshold before selecting among the intent's candidate responses.
func (r *IntentResponder) Respond(input string) (Reply, error) {
	normalized := textnorm.Normalize(input)
	label, confidence, err := r.model.Classify(normalized)
	if err != nil {
		return Reply{}, err
	}
	if confidence < r.threshold {
		r.logger.Debug("low-confidence classification",
			zap.String("intent", label),
			zap.Float64("confidence", confidence),
			zap.Float64("threshold", r.threshold))
		return Reply{Text: Fallback, Confidence: confidence}, nil
	}
	candidates := r.byIntent[label]
	if len(candidates) == 0 {
		return Reply{Text: NoAnswer, Confidence: confidence}, nil
	}
	best := 0
	bestRatio := -1.0
	for i, c := range candidates {
		if ratio := classifier.MatchRatio(normalized, c.Question); ratio > bestRatio {
			best = i
			bestRatio = ratio
		}
	}
	return Reply{Text: candidates[best].Response, Confidence: confidence, Matched: true}, nil
}
