package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"solobot/internal/domain"
)

// ErrNotFound is returned when no record exists for a session id.
var ErrNotFound = errors.New("session not found")

const timeLayout = "2006-01-02 15:04:05"

// Store persists one JSON file per session under a history directory.
// Writers to the same id are not coordinated; last writer wins.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates the history directory if needed and returns a store.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// NewID generates a timestamp-based session id.
func NewID() string {
	return fmt.Sprintf("sessao_%d", time.Now().Unix())
}

// Info is a listing entry for a stored session.
type Info struct {
	ID      string
	SavedAt string
	Turns   int
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes the full turn list for the session, overwriting any prior
// record for the same id. Non-ASCII text is preserved verbatim.
func (s *Store) Save(id string, turns []domain.Turn) error {
	rec := domain.Session{
		ID:        id,
		Data:      time.Now().Format(timeLayout),
		Conversas: turns,
	}
	f, err := os.Create(s.path(id))
	if err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		f.Close()
		return fmt.Errorf("save session %s: %w", id, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	s.logger.Info("session saved", zap.String("id", id), zap.Int("turns", len(turns)))
	return nil
}

// List enumerates stored sessions ordered by save timestamp descending.
// Unreadable or structurally invalid files are skipped rather than
// aborting the whole listing.
func (s *Store) List() []Info {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("could not read history dir", zap.String("dir", s.dir), zap.Error(err))
		return nil
	}
	var out []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var rec domain.Session
		if err := json.Unmarshal(data, &rec); err != nil || rec.ID == "" {
			s.logger.Debug("skipping invalid session file", zap.String("file", e.Name()))
			continue
		}
		out = append(out, Info{ID: rec.ID, SavedAt: rec.Data, Turns: len(rec.Conversas)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt > out[j].SavedAt })
	return out
}

// Load reads the full session record for an id.
func (s *Store) Load(id string) (*domain.Session, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	var rec domain.Session
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return &rec, nil
}

// Delete permanently removes the record for an id.
func (s *Store) Delete(id string) error {
	err := os.Remove(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	s.logger.Info("session deleted", zap.String("id", id))
	return nil
}
