// Package records keeps an append-only log of generated documents.
package records

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

// Record describes one filled document.
type Record struct {
	ID           uuid.UUID         `json:"id"`
	Template     string            `json:"template"`
	Output       string            `json:"output"`
	Snapshot     string            `json:"snapshot,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	Placeholders map[string]string `json:"placeholders"`
}

// NewRecord creates a record with a fresh id and the current time.
func NewRecord(template, output, snapshot string, placeholders map[string]string) (*Record, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(placeholders))
	for k, v := range placeholders {
		values[k] = v
	}

	return &Record{
		ID:           id,
		Template:     template,
		Output:       output,
		Snapshot:     snapshot,
		CreatedAt:    time.Now().UTC(),
		Placeholders: values,
	}, nil
}

// Store appends records to a JSON Lines file. It is safe for concurrent use
// within one process.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Append writes r as one line at the end of the file, creating it if needed.
func (s *Store) Append(r *Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create records directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open records file: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	return f.Close()
}

// List returns every record in file order. A missing file has no records.
func (s *Store) List() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	defer f.Close()

	var out []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var r Record
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			return nil, fmt.Errorf("records file %s line %d: %w", s.path, line, err)
		}
		out = append(out, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	return out, nil
}

// ForTemplate returns the records whose template base name matches name.
func (s *Store) ForTemplate(name string) ([]Record, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	want := filepath.Base(name)
	var out []Record
	for _, r := range all {
		if filepath.Base(r.Template) == want {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get finds a record by its id or by an unambiguous id prefix.
func (s *Store) Get(id string) (*Record, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var found *Record
	for i := range all {
		if !strings.HasPrefix(all[i].ID.String(), strings.ToLower(id)) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("id prefix %q is ambiguous", id)
		}
		found = &all[i]
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return found, nil
}
