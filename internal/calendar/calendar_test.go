package calendar

import (
	"testing"
	"time"

	"workoutlog/internal/record"
)

var october = YearMonth{Year: 2026, Month: time.October}

func sample() []record.Record {
	return []record.Record{
		{ID: "2", Date: "2026-10-13", Time: "08:10", Exercise: "러닝/걷기"},
		{ID: "3", Date: "2026-10-13", Time: "07:30", Exercise: "스쿼트"},
		{ID: "4", Date: "2026-10-01", Time: "19:00", Exercise: "롱풀"},
		{ID: "5", Date: "not a date", Time: "07:00", Exercise: "소미핏"},
		{ID: "6", Date: "2026-09-30", Time: "07:00", Exercise: "하이폴리"},
		{ID: "7", Date: "2026-10-15 (목)", Time: "06:50", Exercise: "업도미널"},
		{ID: "8", Date: "2026-10-13", Time: "07:30", Exercise: "레그프레스"},
	}
}

func TestBuildGrid(t *testing.T) {
	today := time.Date(2026, 10, 15, 21, 0, 0, 0, time.FixedZone("KST", 9*3600))
	m := Build(sample(), october, today)

	if len(m.Weeks) != 5 {
		t.Fatalf("%d weeks", len(m.Weeks))
	}
	first := m.Weeks[0][0]
	if first.Key() != "2026-09-28" || first.InMonth {
		t.Fatalf("grid starts at %s (in month %v)", first.Key(), first.InMonth)
	}
	if first.Count != 0 {
		t.Fatalf("previous month day counted")
	}
	if c := m.Weeks[0][3]; c.Key() != "2026-10-01" || !c.InMonth || !c.HasRecord() {
		t.Fatalf("Oct 1 cell %+v", c)
	}
	if c := m.Weeks[2][1]; c.Day() != 13 || c.Count != 3 {
		t.Fatalf("Oct 13 cell %+v", c)
	}
	if c := m.Weeks[2][3]; !c.Today || c.Day() != 15 {
		t.Fatalf("today cell %+v", c)
	}
	if last := m.Weeks[4][6]; last.Key() != "2026-11-01" || last.InMonth {
		t.Fatalf("grid ends at %s", last.Key())
	}
	if m.Marked != 3 {
		t.Fatalf("marked %d days", m.Marked)
	}
}

func TestBuildMonthEndingOnSunday(t *testing.T) {
	// May 2026 starts on a Friday and ends on a Sunday.
	m := Build(nil, YearMonth{Year: 2026, Month: time.May}, time.Time{})
	if len(m.Weeks) != 5 {
		t.Fatalf("%d weeks", len(m.Weeks))
	}
	if last := m.Weeks[4][6]; last.Key() != "2026-05-31" {
		t.Fatalf("grid ends at %s", last.Key())
	}
}

func TestGroupByDay(t *testing.T) {
	days := GroupByDay(sample(), october)
	if len(days) != 3 {
		t.Fatalf("%d days", len(days))
	}
	wantKeys := []string{"2026-10-15", "2026-10-13", "2026-10-01"}
	for i, k := range wantKeys {
		if days[i].Key() != k {
			t.Fatalf("day %d is %s, want %s", i, days[i].Key(), k)
		}
	}

	ids := []string{}
	for _, r := range days[1].Records {
		ids = append(ids, r.ID)
	}
	// time ascending, insertion order on ties
	if len(ids) != 3 || ids[0] != "3" || ids[1] != "8" || ids[2] != "2" {
		t.Fatalf("Oct 13 order %v", ids)
	}
	if days[1].Weekday() != "화" {
		t.Fatalf("weekday %q", days[1].Weekday())
	}
}

func TestDayOf(t *testing.T) {
	d, ok := DayOf(sample(), time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	if !ok || len(d.Records) != 1 || d.Records[0].ID != "4" {
		t.Fatalf("got %+v, %v", d, ok)
	}
	if _, ok := DayOf(sample(), time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)); ok {
		t.Fatal("empty day found")
	}
}

func TestByWeek(t *testing.T) {
	weeks := ByWeek(sample(), october)
	if len(weeks) != 3 {
		t.Fatalf("%d weeks", len(weeks))
	}
	if weeks[0].Number != 1 || len(weeks[0].Records) != 1 {
		t.Fatalf("week 1 %+v", weeks[0])
	}
	if weeks[1].Number != 2 || len(weeks[1].Records) != 3 {
		t.Fatalf("week 2 %+v", weeks[1])
	}
	if weeks[2].Number != 3 || weeks[2].Records[0].ID != "7" {
		t.Fatalf("week 3 %+v", weeks[2])
	}
}

func TestMonths(t *testing.T) {
	got := Months(sample())
	if len(got) != 2 || got[0] != october || got[1].Month != time.September {
		t.Fatalf("got %v", got)
	}
	if Months(nil) != nil {
		t.Fatal("expected nil for no records")
	}
}

func TestYearMonth(t *testing.T) {
	ym, ok := ParseYearMonth("2026-01")
	if !ok || ym.String() != "2026-01" {
		t.Fatalf("got %v, %v", ym, ok)
	}
	if ym.Prev().String() != "2025-12" || ym.Next().String() != "2026-02" {
		t.Fatalf("prev %s next %s", ym.Prev(), ym.Next())
	}
	if _, ok := ParseYearMonth("2026/01"); ok {
		t.Fatal("parsed bad month")
	}
}
