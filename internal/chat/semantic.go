package chat

import (
	"go.uber.org/zap"

	"solobot/internal/bundle"
	"solobot/internal/embedding"
	"solobot/internal/retrieval"
	"solobot/internal/textnorm"
)

// SemanticResponder answers by embedding the normalized input and picking
// the corpus entry with the highest cosine similarity.
type SemanticResponder struct {
	embedder  embedding.Embedder
	responses []string
	vectors   [][]float64
	threshold float64
	logger    *zap.Logger
}

// NewSemanticResponder wires a restored embedder to a loaded model bundle.
func NewSemanticResponder(emb embedding.Embedder, b *bundle.Bundle, threshold float64, logger *zap.Logger) *SemanticResponder {
	return &SemanticResponder{
		embedder:  emb,
		responses: b.Responses,
		vectors:   b.Vectors,
		threshold: threshold,
		logger:    logger,
	}
}

// Respond normalizes and embeds the input, retrieves the nearest corpus
// entry and applies the confidence threshold.
func (r *SemanticResponder) Respond(input string) (Reply, error) {
	normalized := textnorm.Normalize(input)
	vec, err := r.embedder.Embed(normalized)
	if err != nil {
		return Reply{}, err
	}
	idx, confidence := retrieval.Retrieve(vec, r.vectors)
	if idx < 0 || confidence < r.threshold {
		r.logger.Debug("low-confidence retrieval",
			zap.Float64("confidence", confidence),
			zap.Float64("threshold", r.threshold))
		return Reply{Text: Fallback, Confidence: confidence}, nil
	}
	return Reply{Text: r.responses[idx], Confidence: confidence, Matched: true}, nil
}
