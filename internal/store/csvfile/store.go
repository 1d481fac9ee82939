package csvfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"workoutlog/internal/record"
)

// DefaultPath is the log file name used when none is configured.
const DefaultPath = "my_workout_log.csv"

// bom keeps spreadsheet apps from misreading the Korean header.
var bom = []byte("\xef\xbb\xbf")

// Store is a local, append-only CSV record.Store. Record IDs are row
// numbers counted from the header (row 1), so the first data row is "2".
// Columns are matched by header name, so logs written with an older header
// keep their layout.
type Store struct {
	path string
	mu   sync.RWMutex
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Append(_ context.Context, r record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("csv append: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("csv append: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("csv append: %w", err)
	}

	header := record.NewHeader(record.Columns)
	if info.Size() > 0 {
		if header, err = s.readHeader(); err != nil {
			return fmt.Errorf("csv append: %w", err)
		}
	}

	var buf bytes.Buffer
	if info.Size() == 0 {
		buf.Write(bom)
	}
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		w.Write(record.Columns)
	}
	w.Write(header.Row(r))
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv append: %w", err)
	}

	// One write per row so a failure never leaves half a record behind.
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("csv append: %w", err)
	}
	return nil
}

func (s *Store) LoadAll(_ context.Context) ([]record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.readRows()
	if err != nil {
		return nil, err
	}

	out := make([]record.Record, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	header := record.NewHeader(rows[0])
	for i, row := range rows[1:] {
		out = append(out, header.Record(strconv.Itoa(i+2), row))
	}
	return out, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("csv delete %q: %w", id, record.ErrNotFound)
	}

	rows, err := s.readRows()
	if err != nil {
		return err
	}
	if n < 2 || n > len(rows) {
		return fmt.Errorf("csv delete row %d: %w", n, record.ErrNotFound)
	}
	rows = append(rows[:n-1], rows[n:]...)

	return s.writeRows(rows)
}

func (s *Store) readRows() ([][]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return [][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv read: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, bom)))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parse %s: %w", s.path, err)
	}
	return rows, nil
}

func (s *Store) readHeader() (record.Header, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return record.Header{}, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if b, _ := br.Peek(len(bom)); bytes.Equal(b, bom) {
		br.Discard(len(bom))
	}
	names, err := csv.NewReader(br).Read()
	if err != nil {
		return record.Header{}, fmt.Errorf("csv header: %w", err)
	}
	return record.NewHeader(names), nil
}

// writeRows replaces the file through a temp file and rename.
func (s *Store) writeRows(rows [][]string) error {
	var buf bytes.Buffer
	buf.Write(bom)
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	return nil
}
