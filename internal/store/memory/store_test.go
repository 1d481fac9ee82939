package memory_test

import (
	"context"
	"errors"
	"testing"

	"workoutlog/internal/record"
	"workoutlog/internal/store/memory"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	all, err := s.LoadAll(ctx)
	if err != nil || all == nil || len(all) != 0 {
		t.Fatalf("empty store: %v, %v", all, err)
	}

	for _, name := range []string{"스쿼트", "레그프레스", "스쿼트"} {
		if err := s.Append(ctx, record.Record{Date: "2026-10-13", Exercise: name}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, _ = s.LoadAll(ctx)
	if len(all) != 3 || all[1].Exercise != "레그프레스" {
		t.Fatalf("got %+v", all)
	}

	if err := s.Delete(ctx, all[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	after, _ := s.LoadAll(ctx)
	if len(after) != 2 || after[0].ID != all[0].ID || after[1].ID != all[2].ID {
		t.Fatalf("got %+v", after)
	}

	if err := s.Delete(ctx, all[1].ID); !errors.Is(err, record.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}
