package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"solobot/internal/domain"
)

// IntentEntry is one labelled example for the classifier backend.
type IntentEntry struct {
	Question string
	Intent   string
	Response string
}

// LoadResponses reads the semantic-backend dataset: semicolon-delimited
// UTF-8 text with a header row and at least the input_text and resposta
// columns.
func LoadResponses(path string) ([]domain.CorpusEntry, error) {
	var entries []domain.CorpusEntry
	err := readRows(path, []string{"input_text", "resposta"}, func(fields []string) {
		entries = append(entries, domain.CorpusEntry{Question: fields[0], Response: fields[1]})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadIntents reads the classifier-backend dataset with the input_text,
// intent and resposta columns.
func LoadIntents(path string) ([]IntentEntry, error) {
	var entries []IntentEntry
	err := readRows(path, []string{"input_text", "intent", "resposta"}, func(fields []string) {
		entries = append(entries, IntentEntry{Question: fields[0], Intent: fields[1], Response: fields[2]})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func readRows(path string, columns []string, emit func(fields []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read dataset header: %w", err)
	}
	idx := make([]int, len(columns))
	for i, col := range columns {
		idx[i] = -1
		for j, name := range header {
			if name == col {
				idx[i] = j
				break
			}
		}
		if idx[i] == -1 {
			return fmt.Errorf("dataset %s: missing column %q", path, col)
		}
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read dataset row: %w", err)
		}
		fields := make([]string, len(idx))
		ok := true
		for i, j := range idx {
			if j >= len(row) {
				ok = false
				break
			}
			fields[i] = row[j]
		}
		if !ok {
			continue
		}
		emit(fields)
	}
	return nil
}
