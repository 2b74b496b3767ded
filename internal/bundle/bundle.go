package bundle

import (
	"encoding"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"time"

	"solobot/internal/domain"
	"solobot/internal/embedding"
	"solobot/internal/textnorm"
)

// Bundle is the precomputed model artifact loaded once at startup: the
// corpus embedding matrix, parallel question/response arrays and the
// serialized state of the embedder that produced the matrix (when the
// embedder is local). Questions are stored in normalized form.
type Bundle struct {
	EmbedderName  string
	EmbedderState []byte
	Questions     []string
	Responses     []string
	Vectors       [][]float64
	CreatedAt     time.Time
}

// Build normalizes the corpus questions, prepares the embedder over them
// and embeds every entry.
func Build(emb embedding.Embedder, entries []domain.CorpusEntry) (*Bundle, error) {
	if len(entries) == 0 {
		return nil, errors.New("empty corpus")
	}
	questions := make([]string, len(entries))
	responses := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = textnorm.Normalize(e.Question)
		responses[i] = e.Response
	}
	if err := emb.Prepare(questions); err != nil {
		return nil, fmt.Errorf("prepare embedder: %w", err)
	}
	vectors := make([][]float64, len(questions))
	for i, q := range questions {
		vec, err := emb.Embed(q)
		if err != nil {
			return nil, fmt.Errorf("embed corpus entry %d: %w", i, err)
		}
		vectors[i] = vec
	}
	b := &Bundle{
		EmbedderName: emb.Name(),
		Questions:    questions,
		Responses:    responses,
		Vectors:      vectors,
		CreatedAt:    time.Now(),
	}
	if m, ok := emb.(encoding.BinaryMarshaler); ok {
		state, err := m.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("serialize embedder state: %w", err)
		}
		b.EmbedderState = state
	}
	return b, nil
}

// Save writes the bundle to disk as a gob-encoded artifact.
func Save(path string, b *Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save bundle: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(b); err != nil {
		f.Close()
		return fmt.Errorf("save bundle: %w", err)
	}
	return f.Close()
}

// Load reads a bundle from disk.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}
	defer f.Close()
	var b Bundle
	if err := gob.NewDecoder(f).Decode(&b); err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}
	if len(b.Questions) != len(b.Responses) || len(b.Questions) != len(b.Vectors) {
		return nil, errors.New("load bundle: corpus arrays are not parallel")
	}
	return &b, nil
}

// Restore hands the serialized embedder state back to a freshly
// constructed embedder. The embedder must be of the same kind that built
// the bundle; remote embedders carry no state and pass through.
func (b *Bundle) Restore(emb embedding.Embedder) error {
	if emb.Name() != b.EmbedderName {
		return fmt.Errorf("bundle was built with embedder %q, config selects %q", b.EmbedderName, emb.Name())
	}
	if len(b.EmbedderState) == 0 {
		return nil
	}
	u, ok := emb.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("embedder %q cannot restore serialized state", emb.Name())
	}
	return u.UnmarshalBinary(b.EmbedderState)
}
