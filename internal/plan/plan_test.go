package plan

import (
	"testing"
	"time"
)

func TestForDate(t *testing.T) {
	// 2026-10-12 is a Monday.
	monday := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	want := map[time.Weekday]string{
		time.Monday:    "A",
		time.Tuesday:   "B",
		time.Wednesday: "A",
		time.Thursday:  "B",
		time.Friday:    "A",
		time.Saturday:  "A",
		time.Sunday:    "A",
	}
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		got := ForDate(d)
		if got.Name != want[d.Weekday()] {
			t.Errorf("%s: routine %s, want %s", d.Weekday(), got.Name, want[d.Weekday()])
		}
		if got.Len() != 11 {
			t.Errorf("%s: %d exercises, want 11", d.Weekday(), got.Len())
		}
	}
}

func TestRoutinesShareExercises(t *testing.T) {
	a, b := RoutineA(), RoutineB()
	for _, name := range a.Exercises {
		if _, ok := b.IndexOf(name); !ok {
			t.Errorf("%q missing from routine B", name)
		}
	}
	if b.Exercises[0] != Squat {
		t.Errorf("routine B starts with %q", b.Exercises[0])
	}
	if last := a.Exercises[a.Len()-1]; last != Other {
		t.Errorf("routine A ends with %q", last)
	}
}

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		Somifit:    KindCompletion,
		Running:    KindCardio,
		Squat:      KindWeighted,
		Other:      KindWeighted,
		"풀업":       KindWeighted,
		ChestPress: KindWeighted,
	}
	for name, want := range cases {
		if got := KindOf(name); got != want {
			t.Errorf("KindOf(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestWeekdayLabel(t *testing.T) {
	d := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC) // Thursday
	if got := WeekdayLabel(d); got != "목" {
		t.Fatalf("got %q", got)
	}
}

func TestIndexOfUnknown(t *testing.T) {
	if i, ok := RoutineA().IndexOf("덤벨 컬"); ok || i != 0 {
		t.Fatalf("got %d, %v", i, ok)
	}
}
