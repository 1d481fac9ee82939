package calendar

import (
	"fmt"
	"sort"
	"time"

	"workoutlog/internal/plan"
	"workoutlog/internal/record"
)

type YearMonth struct {
	Year  int
	Month time.Month
}

func Of(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth reads "2006-01".
func ParseYearMonth(s string) (YearMonth, bool) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, false
	}
	return Of(t), true
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (ym YearMonth) Prev() YearMonth { return Of(ym.First().AddDate(0, -1, 0)) }
func (ym YearMonth) Next() YearMonth { return Of(ym.First().AddDate(0, 1, 0)) }

// dated pairs a record with its parsed date; records with malformed dates
// never become dated.
type dated struct {
	day time.Time
	rec record.Record
}

func inMonth(records []record.Record, ym YearMonth) []dated {
	out := make([]dated, 0, len(records))
	for _, r := range records {
		d, ok := record.ParseDate(r.Date)
		if !ok || Of(d) != ym {
			continue
		}
		out = append(out, dated{day: d, rec: r})
	}
	return out
}

// Months lists the months that have records, newest first.
func Months(records []record.Record) []YearMonth {
	seen := make(map[YearMonth]bool)
	var out []YearMonth
	for _, r := range records {
		d, ok := record.ParseDate(r.Date)
		if !ok {
			continue
		}
		ym := Of(d)
		if !seen[ym] {
			seen[ym] = true
			out = append(out, ym)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].First().After(out[j].First())
	})
	return out
}

type Cell struct {
	Date    time.Time
	InMonth bool
	Today   bool
	Count   int // records logged that day
}

func (c Cell) Day() int { return c.Date.Day() }
func (c Cell) HasRecord() bool { return c.Count > 0 }
func (c Cell) Key() string { return c.Date.Format(record.DateLayout) }

// Month is a Monday-first grid covering every day of the month.
type Month struct {
	YearMonth YearMonth
	Weeks     [][7]Cell
	Marked    int // days with at least one record
}

// Build lays out the month grid and marks the days that have records.
func Build(records []record.Record, ym YearMonth, today time.Time) Month {
	counts := make(map[string]int)
	for _, d := range inMonth(records, ym) {
		counts[d.day.Format(record.DateLayout)]++
	}

	first := ym.First()
	offset := (int(first.Weekday()) + 6) % 7 // days since Monday
	cursor := first.AddDate(0, 0, -offset)
	todayKey := today.Format(record.DateLayout)

	m := Month{YearMonth: ym, Marked: len(counts)}
	for {
		var week [7]Cell
		for i := range week {
			key := cursor.Format(record.DateLayout)
			week[i] = Cell{
				Date:    cursor,
				InMonth: Of(cursor) == ym,
				Today:   key == todayKey,
			}
			if week[i].InMonth {
				week[i].Count = counts[key]
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		m.Weeks = append(m.Weeks, week)
		if Of(cursor) != ym {
			break
		}
	}
	return m
}

type Day struct {
	Date    time.Time
	Records []record.Record
}

func (d Day) Key() string { return d.Date.Format(record.DateLayout) }
func (d Day) Weekday() string { return plan.WeekdayLabel(d.Date) }

// GroupByDay groups the month's records by date, newest day first and by
// time of day within a day.
func GroupByDay(records []record.Record, ym YearMonth) []Day {
	ds := inMonth(records, ym)
	sort.SliceStable(ds, func(i, j int) bool {
		if !ds[i].day.Equal(ds[j].day) {
			return ds[i].day.After(ds[j].day)
		}
		return ds[i].rec.Time < ds[j].rec.Time
	})

	var out []Day
	for _, d := range ds {
		if n := len(out); n > 0 && out[n-1].Date.Equal(d.day) {
			out[n-1].Records = append(out[n-1].Records, d.rec)
			continue
		}
		out = append(out, Day{Date: d.day, Records: []record.Record{d.rec}})
	}
	return out
}

// DayOf returns the group for one date, if it has records.
func DayOf(records []record.Record, date time.Time) (Day, bool) {
	key := date.Format(record.DateLayout)
	for _, d := range GroupByDay(records, Of(date)) {
		if d.Key() == key {
			return d, true
		}
	}
	return Day{}, false
}

type Week struct {
	Number  int // week of month, days 1-7 are week 1
	Records []record.Record
}

// ByWeek buckets the month's records into weeks of the month, in insertion
// order within a week. Empty weeks are omitted.
func ByWeek(records []record.Record, ym YearMonth) []Week {
	buckets := make(map[int][]record.Record)
	for _, d := range inMonth(records, ym) {
		n := (d.day.Day()-1)/7 + 1
		buckets[n] = append(buckets[n], d.rec)
	}

	var out []Week
	for n := 1; n <= 5; n++ {
		if rs, ok := buckets[n]; ok {
			out = append(out, Week{Number: n, Records: rs})
		}
	}
	return out
}
