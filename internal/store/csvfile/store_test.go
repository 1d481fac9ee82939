package csvfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"workoutlog/internal/record"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "logs", "workout.csv"))
}

func TestLoadAllMissingFile(t *testing.T) {
	s := newTestStore(t)
	all, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("got %v", all)
	}
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	recs := []record.Record{
		{Date: "2026-10-13", Weekday: "화", Time: "07:30", BodyWeight: 46, Exercise: "스쿼트", Load: 20, Reps: "10 10"},
		{Date: "2026-10-13", Weekday: "화", Time: "07:45", BodyWeight: 46, Exercise: "러닝/걷기", Load: 5.6, Reps: "30분 (경사 2)", Memo: "땀, 많이"},
	}
	for _, r := range recs {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, bom) {
		t.Fatalf("missing BOM")
	}
	if n := strings.Count(string(data), "날짜,요일,시간"); n != 1 {
		t.Fatalf("header written %d times", n)
	}

	all, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d records", len(all))
	}
	if all[0].ID != "2" || all[1].ID != "3" {
		t.Fatalf("ids %q %q", all[0].ID, all[1].ID)
	}
	want := recs[1]
	want.ID = "3"
	if all[1] != want {
		t.Fatalf("got %+v, want %+v", all[1], want)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, name := range []string{"A", "B", "C"} {
		if err := s.Append(ctx, record.Record{Date: "2026-10-14", Exercise: name, Reps: "완료"}); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := s.LoadAll(ctx)
	if err := s.Delete(ctx, all[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	after, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 2 || after[0].Exercise != "A" || after[1].Exercise != "C" {
		t.Fatalf("got %+v", after)
	}

	// appends still go after the rewritten rows
	if err := s.Append(ctx, record.Record{Date: "2026-10-14", Exercise: "D"}); err != nil {
		t.Fatal(err)
	}
	after, _ = s.LoadAll(ctx)
	if len(after) != 3 || after[2].Exercise != "D" {
		t.Fatalf("got %+v", after)
	}
}

func TestDeleteInvalidIdentity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Append(ctx, record.Record{Date: "2026-10-14", Exercise: "A"}); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"1", "0", "3", "x"} {
		if err := s.Delete(ctx, id); !errors.Is(err, record.ErrNotFound) {
			t.Errorf("Delete(%q) = %v", id, err)
		}
	}
}

func TestLoadAllUnreadable(t *testing.T) {
	dir := t.TempDir()
	// a directory where the file should be cannot be read as CSV
	s := NewStore(dir)
	if _, err := s.LoadAll(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOlderLogLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultPath)
	older := "\xef\xbb\xbf날짜,시간,몸무게,운동종목,무게(kg),횟수,메모\n" +
		"2025-01-07 (화),07:30,46.5,스쿼트,20,15 15,가볍게\n"
	if err := os.WriteFile(path, []byte(older), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)

	if err := s.Append(ctx, record.Record{
		Date: "2026-10-15", Weekday: "목", Time: "19:00", BodyWeight: 46,
		Exercise: "롱풀", Load: 25, Reps: "15", Memo: "m",
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(data), "2026-10-15,19:00,46,롱풀,25,15,m\n") {
		t.Fatalf("append ignored the file's header:\n%s", data)
	}

	all, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d records", len(all))
	}
	if r := all[0]; r.Weekday != "화" || r.Time != "07:30" || r.Exercise != "스쿼트" || r.Load != 20 || r.Reps != "15 15" {
		t.Fatalf("older row misread: %+v", r)
	}
	if r := all[1]; r.ID != "3" || r.Weekday != "목" || r.Exercise != "롱풀" {
		t.Fatalf("new row misread: %+v", r)
	}
}
