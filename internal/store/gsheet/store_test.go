package gsheet

import (
	"context"
	"errors"
	"testing"

	"workoutlog/internal/record"
)

// fakeAPI holds one worksheet in memory, header included.
type fakeAPI struct {
	rows    [][]any
	lastRng string
	err     error
}

func newFake() *fakeAPI {
	header := make([]any, len(record.Columns))
	for i, c := range record.Columns {
		header[i] = c
	}
	return &fakeAPI{rows: [][]any{header}}
}

func (f *fakeAPI) appendRow(_ context.Context, rng string, row []any) error {
	if f.err != nil {
		return f.err
	}
	f.lastRng = rng
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeAPI) values(_ context.Context, rng string) ([][]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastRng = rng
	return f.rows, nil
}

func (f *fakeAPI) deleteRow(_ context.Context, _ string, row int64) error {
	if f.err != nil {
		return f.err
	}
	if row > int64(len(f.rows)) {
		return nil // the sheet grid extends past the data; Sheets drops a blank row
	}
	f.rows = append(f.rows[:row-1], f.rows[row:]...)
	return nil
}

func TestHeaderOnlySheetIsEmpty(t *testing.T) {
	s := newStore(newFake(), "")
	all, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("got %v", all)
	}
}

func TestAppendAndDelete(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	s := newStore(fake, "log")

	for _, name := range []string{"스쿼트", "레그프레스", "업도미널"} {
		if err := s.Append(ctx, record.Record{Date: "2026-10-13", Weekday: "화", Exercise: name, Load: 20, Reps: "10"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if fake.lastRng != "'log'!A:H" {
		t.Fatalf("range %q", fake.lastRng)
	}
	if got := fake.rows[1][5]; got != "20" {
		t.Fatalf("load cell %v", got)
	}

	all, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 3 || all[0].ID != "2" || all[2].ID != "4" || all[2].Load != 20 {
		t.Fatalf("got %+v", all)
	}

	if err := s.Delete(ctx, all[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	after, _ := s.LoadAll(ctx)
	if len(after) != 2 || after[0].Exercise != "스쿼트" || after[1].Exercise != "업도미널" {
		t.Fatalf("got %+v", after)
	}
}

func TestDeleteRejectsHeaderAndGarbage(t *testing.T) {
	s := newStore(newFake(), "")
	for _, id := range []string{"1", "0", "x"} {
		if err := s.Delete(context.Background(), id); !errors.Is(err, record.ErrNotFound) {
			t.Errorf("Delete(%q) = %v", id, err)
		}
	}
}

func TestDeletePastLastRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	s := newStore(fake, "")
	if err := s.Append(ctx, record.Record{Date: "2026-10-13", Exercise: "스쿼트"}); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"3", "500"} {
		if err := s.Delete(ctx, id); !errors.Is(err, record.ErrNotFound) {
			t.Errorf("Delete(%q) = %v, want ErrNotFound", id, err)
		}
	}
	if len(fake.rows) != 2 {
		t.Fatalf("rows changed: %d", len(fake.rows))
	}
}

func TestBackendErrorsSurface(t *testing.T) {
	fake := newFake()
	fake.err = errors.New("unreachable")
	s := newStore(fake, "")
	ctx := context.Background()

	if _, err := s.LoadAll(ctx); err == nil {
		t.Error("LoadAll swallowed the error")
	}
	if err := s.Append(ctx, record.Record{Exercise: "롱풀"}); err == nil {
		t.Error("Append swallowed the error")
	}
	if err := s.Delete(ctx, "2"); err == nil || errors.Is(err, record.ErrNotFound) {
		t.Errorf("Delete = %v, want a backend error", err)
	}
}

func TestNewStoreRequiresID(t *testing.T) {
	if _, err := NewStore(context.Background(), "", "", ""); err == nil {
		t.Fatal("expected error")
	}
}
